package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/formant-tracker/pkg/audio/synth"
)

var (
	synthF1         float64
	synthF2         float64
	synthPitch      float64
	synthSampleRate float64
	synthDuration   time.Duration
	synthVowel      string
	synthMode       string
	synthAnalyze    bool
	synthOut        string
)

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Synthesize a steady vowel with known formants",
	Long: `Render a vowel from a sawtooth source shaped by two formant resonators.

Formants come from --f1/--f2 or from an IPA vowel with --vowel. The samples can
be written with --out and analyzed in place with --analyze, which reads the
last audio window the same way the live display does.

Known vowels: ` + vowelSymbols() + `

Examples:
  formant-tracker synth --vowel a --analyze
  formant-tracker synth --f1 300 --f2 2300 --duration 1s --out i.yaml`,
	Args: cobra.NoArgs,
	RunE: runSynth,
}

func init() {
	rootCmd.AddCommand(synthCmd)

	defaults := synth.DefaultParams()
	synthCmd.Flags().Float64Var(&synthF1, "f1", defaults.F1, "first formant (Hz)")
	synthCmd.Flags().Float64Var(&synthF2, "f2", defaults.F2, "second formant (Hz)")
	synthCmd.Flags().Float64Var(&synthPitch, "pitch", defaults.Pitch, "fundamental frequency (Hz)")
	synthCmd.Flags().Float64Var(&synthSampleRate, "sample-rate", defaults.SampleRate, "output sample rate (Hz)")
	synthCmd.Flags().DurationVarP(&synthDuration, "duration", "d", defaults.Duration, "length of the vowel")
	synthCmd.Flags().StringVar(&synthVowel, "vowel", "", "IPA vowel symbol to take F1/F2 from")
	synthCmd.Flags().StringVar(&synthMode, "mode", string(defaults.Mode), "resonator topology (cascade, parallel)")
	synthCmd.Flags().BoolVar(&synthAnalyze, "analyze", false, "analyze the synthesized vowel")
	synthCmd.Flags().StringVar(&synthOut, "out", "", "write the samples to a file (.yaml, .json, .txt, .f32)")
}

func runSynth(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	params := config.Synth
	flags := cmd.Flags()
	if flags.Changed("f1") {
		params.F1 = synthF1
	}
	if flags.Changed("f2") {
		params.F2 = synthF2
	}
	if flags.Changed("pitch") {
		params.Pitch = synthPitch
	}
	if flags.Changed("sample-rate") {
		params.SampleRate = synthSampleRate
	}
	if flags.Changed("duration") {
		params.Duration = synthDuration
	}
	if flags.Changed("mode") {
		params.Mode = synth.Mode(strings.ToLower(synthMode))
	}
	if synthVowel != "" {
		vowel, ok := synth.LookupVowel(synthVowel)
		if !ok {
			return fmt.Errorf("unknown vowel %q (known: %s)", synthVowel, vowelSymbols())
		}
		params.F1, params.F2 = vowel.F1, vowel.F2
	}

	application, err := newApp(cmd, config)
	if err != nil {
		return err
	}

	report, err := application.Synthesize(params, synthOut, synthAnalyze)
	if err != nil {
		return err
	}

	return application.Output(report)
}

func vowelSymbols() string {
	symbols := make([]string, len(synth.Vowels))
	for i, v := range synth.Vowels {
		symbols[i] = v.Symbol
	}
	return strings.Join(symbols, " ")
}
