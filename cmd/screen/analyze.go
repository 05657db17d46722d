package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"resume-screener/internal/bootstrap"
	"resume-screener/internal/extract"
	"resume-screener/internal/screening"
	"resume-screener/internal/shared/telemetry"
)

func newAnalyzeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Screen one resume against one or more roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, v)
		},
	}

	cmd.Flags().StringP("file", "f", "", "resume file (.pdf or .docx)")
	cmd.Flags().String("jd", "", "job description text")
	cmd.Flags().String("jd-file", "", "file holding the job description")
	cmd.Flags().StringSliceP("role", "r", nil, "job role to screen against (repeatable)")
	cmd.Flags().Bool("strict", false, "fail when the resume text cannot be extracted")
	cmd.Flags().String("match-mode", "", "skill match mode: substring or word")
	cmd.Flags().Int("reference-year", 0, "year used for open-ended ranges such as 2019-present")

	for _, name := range []string{"file", "jd", "jd-file", "role", "strict", "match-mode", "reference-year"} {
		_ = v.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	return cmd
}

func runAnalyze(cmd *cobra.Command, v *viper.Viper) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	path := strings.TrimSpace(v.GetString("file"))
	if path == "" {
		return errors.New("--file is required")
	}
	jd, err := jobDescription(v)
	if err != nil {
		return err
	}
	roles := v.GetStringSlice("role")
	if len(roles) == 0 {
		return errors.New("at least one --role is required")
	}

	analyzer, models, err := bootstrap.BuildAnalyzer(loadConfig(v))
	if err != nil {
		return err
	}
	defer models.Shutdown()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	doc := extract.RawDocument{Data: data, Format: extract.FormatFromFileName(path)}

	var results []*screening.Result
	if v.GetBool("strict") {
		results, err = analyzeStrict(ctx, analyzer, doc, jd, roles)
	} else {
		results, err = analyzer.AnalyzeRoles(ctx, doc, jd, roles)
	}
	if err != nil {
		return err
	}

	out := make([]map[string]any, 0, len(results))
	for _, res := range results {
		out = append(out, res.ToMap())
		telemetry.Debug("screen.result", map[string]any{
			"role":                     res.JobRole,
			"shortlisting_probability": res.ShortlistingProbability,
		})
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// analyzeStrict validates roles first, then surfaces extraction errors instead of
// scoring an empty resume.
func analyzeStrict(ctx context.Context, analyzer *screening.Analyzer, doc extract.RawDocument, jd string, roles []string) ([]*screening.Result, error) {
	for _, role := range roles {
		if _, err := analyzer.Taxonomy().Lookup(role); err != nil {
			return nil, err
		}
	}
	text, err := extract.TextStrict(ctx, doc)
	if err != nil {
		return nil, err
	}
	results := make([]*screening.Result, 0, len(roles))
	for _, role := range roles {
		res, err := analyzer.AnalyzeText(ctx, text, jd, role)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func jobDescription(v *viper.Viper) (string, error) {
	jd := v.GetString("jd")
	if path := strings.TrimSpace(v.GetString("jd-file")); path != "" {
		if strings.TrimSpace(jd) != "" {
			return "", errors.New("use either --jd or --jd-file, not both")
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read job description: %w", err)
		}
		jd = string(raw)
	}
	return jd, nil
}
