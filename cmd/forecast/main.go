package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"forecastengine/internal/config"
	"forecastengine/internal/models"
	"forecastengine/internal/services"
	"forecastengine/pkg/forecast"
)

func main() {
	log.SetFlags(0)

	file := flag.String("f", "", "scenario document (YAML, or JSON with a .json extension)")
	algorithms := flag.String("algorithms", "", "comma-separated algorithms to compare")
	rank := flag.String("rank", "", "rank compared results (mape)")
	confidence := flag.Float64("confidence", 0, "confidence level for bounds: 0.80, 0.90, 0.95 or 0.99")
	summary := flag.Bool("summary", false, "print a summary table instead of JSON")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	req, err := models.LoadRequest(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}
	if *algorithms != "" {
		req.Algorithms = parseAlgorithms(*algorithms)
	}
	if *confidence != 0 {
		req.Confidence = *confidence
	}

	cfg := config.Load()
	cfg.CacheTTL = 0
	service := services.NewForecastService(cfg)
	defer service.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var out any
	var results []forecast.ForecastResult
	if len(req.Algorithms) > 0 || *rank != "" {
		cmp, err := service.Compare(ctx, *req, *rank)
		if err != nil {
			log.Fatalf("Comparison failed: %v", err)
		}
		out, results = cmp, cmp.Results
		for _, s := range cmp.Skipped {
			log.Printf("skipped %s: %s", s.Algorithm, s.Reason)
		}
	} else {
		run, err := service.Forecast(ctx, *req)
		if err != nil {
			log.Fatalf("Forecast failed: %v", err)
		}
		out, results = run, []forecast.ForecastResult{*run.Result}
	}

	if *summary {
		printSummary(os.Stdout, req.Scenario, results)
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}

func parseAlgorithms(list string) []forecast.Algorithm {
	var algs []forecast.Algorithm
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			algs = append(algs, forecast.Algorithm(name))
		}
	}
	return algs
}

// printSummary writes one block per result with thousands separators.
func printSummary(w io.Writer, s forecast.Scenario, results []forecast.ForecastResult) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "%s: %d %s periods\n", s.Name, s.PeriodCount, s.PeriodType)
	for _, r := range results {
		p.Fprintf(w, "\n%s", r.Algorithm)
		if r.SeasonallyAdjusted {
			p.Fprintf(w, " (seasonally adjusted)")
		}
		p.Fprintln(w)

		if r.Accuracy != nil {
			p.Fprintf(w, "  MAE %.2f  MAPE %.2f%%  RMSE %.2f\n", r.Accuracy.MAE, r.Accuracy.MAPE, r.Accuracy.RMSE)
		}
		for i, period := range r.Periods {
			if i >= len(r.Forecast) {
				break
			}
			p.Fprintf(w, "  %-10s %18.2f", period.Label, r.Forecast[i])
			if ci := r.ConfidenceIntervals; ci != nil {
				p.Fprintf(w, "  [%.2f, %.2f]", ci.Lower[i], ci.Upper[i])
			}
			p.Fprintln(w)
		}
		p.Fprintf(w, "  Total revenue %.2f, net income %.2f\n", r.Totals.Revenue, r.Totals.NetIncome)
	}
}
