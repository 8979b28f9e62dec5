// Command webbuild bundles the browser client into web/client.js, which the
// server embeds. go generate runs it from internal/server; -watch rebuilds
// on every change to the TypeScript sources.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
)

type buildFlags struct {
	Entry     string
	Out       string
	Minify    bool
	Sourcemap bool
}

// clientBuild resolves the bundle options relative to dir.
func clientBuild(dir string, f buildFlags) api.BuildOptions {
	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	opts := api.BuildOptions{
		EntryPoints:       []string{abs(f.Entry)},
		Outfile:           abs(f.Out),
		AbsWorkingDir:     dir,
		Bundle:            true,
		Format:            api.FormatIIFE,
		Target:            api.ES2018,
		Platform:          api.PlatformBrowser,
		LogLevel:          api.LogLevelInfo,
		Write:             true,
		MinifyWhitespace:  f.Minify,
		MinifyIdentifiers: f.Minify,
		MinifySyntax:      f.Minify,
		Loader:            map[string]api.Loader{".ts": api.LoaderTS},
		Banner:            map[string]string{"js": "// Code generated by webbuild. DO NOT EDIT."},
	}
	if f.Sourcemap {
		opts.Sourcemap = api.SourceMapInline
	}
	return opts
}

func main() {
	var f buildFlags
	flag.StringVar(&f.Entry, "entry", filepath.Join("web", "src", "main.ts"), "TypeScript entry point")
	flag.StringVar(&f.Out, "out", filepath.Join("web", "client.js"), "bundle output")
	flag.BoolVar(&f.Minify, "minify", false, "minify the bundle")
	flag.BoolVar(&f.Sourcemap, "sourcemap", false, "inline a source map")
	watch := flag.Bool("watch", false, "rebuild on change until interrupted")
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("getwd: %v", err)
	}
	opts := clientBuild(wd, f)

	if *watch {
		bctx, cerr := api.Context(opts)
		if cerr != nil {
			log.Fatalf("esbuild context: %v", cerr)
		}
		defer bctx.Dispose()
		if err := bctx.Watch(api.WatchOptions{}); err != nil {
			log.Fatalf("watch: %v", err)
		}
		log.Printf("watching %s", opts.EntryPoints[0])
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		<-stop
		return
	}

	result := api.Build(opts)
	if len(result.Errors) > 0 {
		for _, message := range result.Errors {
			log.Printf("esbuild error: %s", message.Text)
		}
		log.Fatalf("esbuild failed with %d error(s)", len(result.Errors))
	}
	log.Printf("wrote %s", opts.Outfile)
}
