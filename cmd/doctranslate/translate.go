package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/doc-translate/internal/ai"
	"github.com/thywilljoshua/doc-translate/internal/convert"
	"github.com/thywilljoshua/doc-translate/internal/translate"
)

func translateCmd(a *app) *cobra.Command {
	var lang string
	var out string
	var backend string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "translate <file>",
		Short: "Translate a .docx, PDF or image into a new .docx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if backend != "" {
				a.cfg.Backend = backend
			}
			if concurrency > 0 {
				a.cfg.Concurrency = concurrency
			}
			if out == "" {
				out = "."
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			tr, err := a.translator(cmd)
			if err != nil {
				return err
			}

			conf := convert.Config{
				WorkDir:      a.cfg.WorkDir,
				Target:       lang,
				Translator:   tr,
				OCRLanguage:  a.cfg.OCR.Language,
				DPI:          a.cfg.OCR.DPI,
				PreviewLines: a.cfg.PreviewLines,
				Logger:       a.logger,
			}
			res, cleanup, err := convert.Run(cmd.Context(), filepath.Base(path), data, conf)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := os.MkdirAll(out, 0o755); err != nil {
				return err
			}
			dst := filepath.Join(out, res.DownloadName)
			if err := copyFile(res.OutputPath, dst); err != nil {
				return fmt.Errorf("write %s: %w", dst, err)
			}
			res.OutputPath = dst

			b, _ := json.MarshalIndent(res, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "hi", "target language code (see 'doctranslate languages')")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (default: current directory)")
	cmd.Flags().StringVar(&backend, "backend", "", "translation backend: google|gemini|openai|off (overrides config)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel translation calls (overrides config)")
	return cmd
}

// translator builds the configured backend wrapped in the per-unit policy.
func (a *app) translator(cmd *cobra.Command) (*translate.Translator, error) {
	backend, err := ai.New(cmd.Context(), a.cfg.BackendOptions())
	if err != nil {
		return nil, err
	}
	a.logger.Debug("translation backend ready", "backend", backend.Name(), "concurrency", a.cfg.Concurrency)
	return translate.New(backend, translate.Config{
		Concurrency: a.cfg.Concurrency,
		Logger:      a.logger,
	}), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
