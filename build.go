//go:build ignore

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
)

var (
	m                 = minify.New()
	assetReplacements = map[string]string{
		"style.css": "style.min.css",
		"main.js":   "main.min.js",
		"login.js":  "login.min.js",
		"admin.js":  "admin.min.js",
		"editor.js": "editor.min.js",
	}
)

func init() {
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/javascript", js.Minify)
}

func main() {
	release := flag.Bool("release", false, "Process assets for release")
	clean := flag.Bool("clean", false, "Clean processed assets and restore original files")
	flag.Parse()

	if *release && *clean {
		log.Fatal("Cannot use -release and -clean flags simultaneously.")
	}

	if *release {
		fmt.Println("Processing assets for release...")
		if err := processAssets(); err != nil {
			log.Fatalf("Failed to process assets for release: %v", err)
		}
		fmt.Println("Assets processed successfully.")
	} else if *clean {
		fmt.Println("Cleaning up processed assets...")
		if err := cleanupAssets(); err != nil {
			log.Fatalf("Failed to clean up assets: %v", err)
		}
		fmt.Println("Cleanup complete.")
	} else {
		fmt.Println("No action specified. Use -release to process assets or -clean to clean up.")
	}
}

func processAssets() error {
	for original, minified := range assetReplacements {
		if err := minifyFile(original, minified); err != nil {
			return err
		}
	}
	return updateHTMLReferences(false)
}

func cleanupAssets() error {
	if err := updateHTMLReferences(true); err != nil {
		return err
	}
	for _, minified := range assetReplacements {
		path := assetPath(minified)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return nil
}

func assetPath(name string) string {
	if strings.HasSuffix(name, ".css") {
		return filepath.Join("static", "css", name)
	}
	return filepath.Join("static", "js", name)
}

func mediaType(name string) string {
	if strings.HasSuffix(name, ".css") {
		return "text/css"
	}
	return "text/javascript"
}

func minifyFile(original, minified string) error {
	src, err := os.ReadFile(assetPath(original))
	if err != nil {
		return fmt.Errorf("read %s: %w", original, err)
	}
	out, err := m.Bytes(mediaType(original), src)
	if err != nil {
		return fmt.Errorf("minify %s: %w", original, err)
	}
	if err := os.WriteFile(assetPath(minified), out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", minified, err)
	}
	fmt.Printf("  %s -> %s\n", original, minified)
	return nil
}

// updateHTMLReferences rewrites asset links in the templates; restore
// flips them back to the originals.
func updateHTMLReferences(restore bool) error {
	return filepath.WalkDir("templates", func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".html") {
			return err
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		content := string(src)
		for original, minified := range assetReplacements {
			if restore {
				content = strings.ReplaceAll(content, minified, original)
			} else {
				content = strings.ReplaceAll(content, original, minified)
			}
		}
		if content == string(src) {
			return nil
		}
		return os.WriteFile(path, []byte(content), 0o644)
	})
}
