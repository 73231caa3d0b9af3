package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-sass/sassc/pkg/api"
)

var (
	flagOutput    string
	flagStyle     string
	flagLoadPaths []string
	flagCharset   string
	flagQuietDeps bool
	flagVerbose   bool
)

// buildCmd implements "sassc build <entry>". There is deliberately no
// "--watch" flag: a compilation either completes or fails, one shot per
// invocation (spec.md §5, §6 Non-goals).
var buildCmd = &cobra.Command{
	Use:   "build <entry>",
	Short: "Compile a Sass entrypoint to CSS",
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write CSS to this file instead of stdout")
	buildCmd.Flags().StringVar(&flagStyle, "style", "", `output style: "expanded" or "compressed" (default "expanded")`)
	buildCmd.Flags().StringArrayVar(&flagLoadPaths, "load-path", nil, "additional load path, may be repeated")
	buildCmd.Flags().StringVar(&flagCharset, "charset", "", `"on" or "off" (default: detect non-ASCII output)`)
	buildCmd.Flags().BoolVar(&flagQuietDeps, "quiet-deps", false, "suppress diagnostics raised by loaded dependencies")
	buildCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug-level diagnostics")
}

func runBuild(cmd *cobra.Command, args []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return fmt.Errorf("reading .sassrc.yaml: %w", err)
	}

	opts := api.Options{
		LoadPaths:     append(append([]string{}, fileCfg.LoadPaths...), flagLoadPaths...),
		PackageConfig: fileCfg.PackageConfig,
		QuietDeps:     flagQuietDeps,
		Verbose:       flagVerbose,
		Logger:        newCLILogger(flagVerbose),
	}

	if resolveStyle(fileCfg.Style, flagStyle) == "compressed" {
		opts.Style = api.StyleCompressed
	}

	switch resolveCharset(fileCfg.Charset, flagCharset) {
	case "on":
		opts.Charset = api.CharsetEnabled
	case "off":
		opts.Charset = api.CharsetDisabled
	}

	result := api.Compile(args[0], opts)
	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, formatMessage("warning", w))
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, formatMessage("error", e))
		}
		return fmt.Errorf("compilation failed with %d error(s)", len(result.Errors))
	}

	if flagOutput == "" {
		fmt.Println(result.CSS)
		return nil
	}
	return os.WriteFile(flagOutput, []byte(result.CSS), 0o644)
}

func resolveStyle(fileStyle, flagStyle string) string {
	if flagStyle != "" {
		return flagStyle
	}
	return fileStyle
}

func resolveCharset(fileCharset *bool, flagCharset string) string {
	if flagCharset != "" {
		return flagCharset
	}
	if fileCharset != nil {
		if *fileCharset {
			return "on"
		}
		return "off"
	}
	return ""
}

func formatMessage(kind string, m api.Message) string {
	if m.Location == nil {
		return fmt.Sprintf("%s: %s", kind, m.Text)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", m.Location.File, m.Location.Line, m.Location.Column, kind, m.Text)
}
