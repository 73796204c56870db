/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"argobooks/internal/config"
	"argobooks/internal/crash"
	"argobooks/internal/export"
	"argobooks/internal/i18n"
	"argobooks/internal/ledger"
	applog "argobooks/internal/log"
	"argobooks/internal/model"
	"argobooks/internal/storage"
	"argobooks/internal/ui"
	"argobooks/internal/version"
)

func usage() {
	fmt.Println("ArgoBooks report designer")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  argobooks version|-v|--version             Show version")
	fmt.Println("  argobooks init <dir> <title>               Create a report workspace at <dir> titled <title>")
	fmt.Println("  argobooks open <dir>                       Open workspace at <dir> and print a summary")
	fmt.Println("  argobooks render <dir> [pages...]          Export pages as PNG into <dir>/exports")
	fmt.Println("  argobooks export-pdf <dir> [out.pdf]       Export the whole report as a PDF")
	fmt.Println("  argobooks ui [<dir>]                       Launch the designer (build with -tags fyne for full UI)")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var h *storage.Handle
	defer func() { crash.Recover(h) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("ArgoBooks report designer")
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 4 {
				fmt.Println("init requires <dir> and <title>")
				usage()
				os.Exit(2)
			}
			dir := args[2]
			title := args[3]
			abs, _ := filepath.Abs(dir)
			l.Info("init workspace", slog.String("root", abs), slog.String("title", title))
			handle, err := storage.Init(abs, model.NewReportConfiguration(title))
			if err != nil {
				l.Error("init failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			h = handle
			fmt.Println("Created report workspace at", abs)
			return
		case "open":
			if len(args) < 3 {
				fmt.Println("open requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			l.Info("open workspace", slog.String("root", abs))
			handle, err := storage.Open(abs)
			if err != nil {
				l.Error("open failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			h = handle
			fmt.Printf("Opened report: %s\n", handle.Config.Title)
			fmt.Printf("Pages: %d, elements: %d\n", handle.Config.PageCount, len(handle.Config.Elements))
			fmt.Println("Root:", handle.Root)
			return
		case "render":
			if len(args) < 3 {
				fmt.Println("render requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			handle, err := storage.Open(abs)
			if err != nil {
				l.Error("open failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			h = handle
			opt := exportOptions(l)
			for _, a := range args[3:] {
				var n int
				if _, err := fmt.Sscanf(a, "%d", &n); err != nil || n < 1 {
					fmt.Println("bad page number:", a)
					os.Exit(2)
				}
				opt.Pages = append(opt.Pages, n)
			}
			if err := export.ExportPNGPages(context.Background(), handle, "", opt); err != nil {
				l.Error("render failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Wrote PNG pages to", filepath.Join(abs, "exports"))
			return
		case "export-pdf":
			if len(args) < 3 {
				fmt.Println("export-pdf requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			handle, err := storage.Open(abs)
			if err != nil {
				l.Error("open failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			h = handle
			out := filepath.Join(abs, "exports", "report.pdf")
			if len(args) >= 4 {
				out = args[3]
			}
			if err := export.ExportPDF(context.Background(), handle, out, exportOptions(l)); err != nil {
				l.Error("export-pdf failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Wrote", out)
			return
		case "ui":
			var dir string
			if len(args) >= 3 {
				dir = args[2]
			}
			if err := ui.Run(dir); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

// exportOptions wires the configured ledger and language catalog into the
// headless exporters. A missing data source degrades to placeholder content.
func exportOptions(l *slog.Logger) export.Options {
	appCfg, _, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		appCfg = config.Defaults()
	}
	cat, err := i18n.LoadCatalog(appCfg.General.Language)
	if err != nil {
		l.Warn("catalog load failed", slog.Any("err", err))
	}
	opt := export.Options{Translate: cat.Translate}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(appCfg.Ledger.TimeoutMs)*time.Millisecond)
	defer cancel()
	switch appCfg.Ledger.Driver {
	case "postgres":
		if s, err := ledger.OpenShared(ctx, appCfg.Ledger.DSN); err == nil {
			opt.Data = s
		} else {
			l.Warn("shared ledger unavailable", slog.Any("err", err))
		}
	default:
		if appCfg.Ledger.Path == "" {
			break
		}
		if s, err := ledger.OpenStore(ctx, appCfg.Ledger.Path); err == nil {
			opt.Data = s
		} else {
			l.Warn("company file unavailable", slog.Any("err", err))
		}
	}
	return opt
}
