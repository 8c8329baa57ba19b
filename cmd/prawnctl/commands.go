package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"prawn-monitoring/internal/adapters/backend"
	"prawn-monitoring/internal/config"
	"prawn-monitoring/internal/domain/diagnosis"
	"prawn-monitoring/internal/domain/estimation"
	"prawn-monitoring/internal/domain/sensors"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "prawnctl",
		Short:         "Herramientas de línea de comandos para el monitoreo de estanques",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEstimateCmd(),
		newQuestionsCmd(),
		newAssessCmd(),
		newSensorsCmd(),
	)
	return root
}

func newEstimateCmd() *cobra.Command {
	var (
		age, food, season string
		asJSON            bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estima el conteo de camarones por kilo con la fórmula local",
		Example: `  prawnctl estimate --age 60 --food 1500 --season Summer
  prawnctl estimate --age 30 --food 900 --season Rainy --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := estimation.ParseInput(age, food, season)
			if err != nil {
				return err
			}
			res, err := estimation.Compute(in)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.2f prawns/kg\n", res.CountPerKg)
			return err
		},
	}

	cmd.Flags().StringVar(&age, "age", "", "edad del estanque en días")
	cmd.Flags().StringVar(&food, "food", "", "alimento diario por lakh de camarones")
	cmd.Flags().StringVar(&season, "season", "", "temporada: Summer, Winter o Rainy")
	cmd.Flags().BoolVar(&asJSON, "json", false, "salida JSON")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("food")
	return cmd
}

func newQuestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "questions",
		Short: "Lista el cuestionario de diagnóstico",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for i, q := range diagnosis.Questions {
				fmt.Fprintf(tw, "%s\t%s\n", diagnosis.Key(i), q)
			}
			return tw.Flush()
		},
	}
}

func newAssessCmd() *cobra.Command {
	var (
		answers string
		ph      float64
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Evalúa localmente las respuestas del cuestionario",
		Long: `Evalúa q1..q10 sin llamar al backend. Las respuestas van separadas
por coma en orden (yes/no, true/false, 1/0). --ph descuenta un punto si
está fuera de 7.0-9.0.`,
		Example: `  prawnctl assess --answers yes,yes,yes,no,yes,yes,yes,no,yes,no --ph 7.8`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parts := strings.Split(answers, ",")
			if len(parts) != len(diagnosis.Questions) {
				return fmt.Errorf("--answers needs %d values, got %d", len(diagnosis.Questions), len(parts))
			}
			a, err := diagnosis.ParseAnswers(func(k string) string {
				for i := range parts {
					if diagnosis.Key(i) == k {
						return parts[i]
					}
				}
				return ""
			})
			if err != nil {
				return err
			}

			var php *float64
			if cmd.Flags().Changed("ph") {
				php = &ph
			}
			res := diagnosis.Assess(a, php)

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			status := "needs attention"
			if res.Healthy {
				status = "healthy"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "score %d/10 (%s)\n%s\n", res.Score, status, res.Recommendation)
			return err
		},
	}

	cmd.Flags().StringVar(&answers, "answers", "", "respuestas q1..q10 separadas por coma")
	cmd.Flags().Float64Var(&ph, "ph", 0, "pH actual del estanque (opcional)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "salida JSON")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func newSensorsCmd() *cobra.Command {
	var (
		backendURL string
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sensors",
		Short: "Lee los sensores del backend y muestra la calidad del agua",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := backend.NewClient(backend.Config{BaseURL: backendURL, Timeout: timeout})
			if err != nil {
				return err
			}
			src := backend.NewRemoteSource(client)
			if err := src.Start(cmd.Context()); err != nil {
				return err
			}
			defer func() { _ = src.Stop() }()

			snap, err := src.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			items := sensors.Assess(snap)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "METRIC\tVALUE\tRANGE\tLEVEL\n")
			for _, it := range items {
				fmt.Fprintf(tw, "%s\t%.2f %s\t%g-%g\t%s\n", it.Name, it.Value, it.Unit, it.Range.Min, it.Range.Max, it.Level)
			}
			fmt.Fprintf(tw, "overall\t\t\t%s\n", sensors.Overall(items))
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&backendURL, "backend", config.DefaultBackendURL, "URL del backend de sensores")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "timeout del request")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
