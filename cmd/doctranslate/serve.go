package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/doc-translate/internal/convert"
	"github.com/thywilljoshua/doc-translate/internal/web"
)

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload web UI and HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			tr, err := a.translator(cmd)
			if err != nil {
				return err
			}
			srv, err := web.New(web.Config{
				Pipeline: convert.Config{
					WorkDir:      a.cfg.WorkDir,
					Translator:   tr,
					OCRLanguage:  a.cfg.OCR.Language,
					DPI:          a.cfg.OCR.DPI,
					PreviewLines: a.cfg.PreviewLines,
					Logger:       a.logger,
				},
				MaxUploadBytes: a.cfg.MaxUploadBytes(),
				Logger:         a.logger,
			})
			if err != nil {
				return err
			}

			httpSrv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("listening", "addr", httpSrv.Addr, "backend", a.cfg.Backend)
				errCh <- httpSrv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
				a.logger.Info("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				return httpSrv.Shutdown(ctx)
			}
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config, default :8080)")
	return cmd
}
