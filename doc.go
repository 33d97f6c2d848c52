// Package htmltoc converts static web assets into C source for embedded
// HTTP servers.
//
// # Quick Start
//
// Create a converter and run it over the discovered files:
//
//	conv, err := htmltoc.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report, err := conv.Run([]string{"www/index.html", "www/logo.png"}, "main/www")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(report.Succeeded(), "units written")
//
// Every asset becomes <symbol>.c holding a byte array and its length, where
// symbol is the base name with dots replaced by underscores. The arrays are
// prefixed with a complete HTTP response header, so the device sends them
// verbatim. webpages.h and webpages.c declare the arrays and a page table
// the firmware looks pages up in.
//
// # Encoding
//
// Markup (.html) and stylesheets (.css) are emitted as one string literal
// per source line. Only double quotes are escaped. Images (.png) are
// emitted as a brace-enclosed list of hex byte literals, 32 per line. Any
// other extension yields an empty array of size zero.
//
// Unit.Bytes evaluates the generated fragments the way a C compiler would,
// which is handy to check sizes and content:
//
//	u, _ := htmltoc.TextEncoder{}.Encode(htmltoc.KindMarkup, strings.NewReader("<p>hi</p>\n"))
//	b, _ := u.Bytes()
//	fmt.Println(len(b) == u.Size) // true
//
// # Registry
//
// The generated table has a fixed capacity (WithCapacity, default 16).
// Registry models it in Go: Run replays the generated initializer against
// it and reports pages that overflow the table or are shadowed by an
// earlier page with the same name.
//
// Names are flat: www/css/style.css is served as /style.css. WithLinkCheck
// scans registered markup for references the table cannot answer and
// lists them in Report.BrokenLinks.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := htmltoc.NewConverter(
//	    htmltoc.WithCapacity(32),
//	    htmltoc.WithNewline(htmltoc.NewlineCRLF),
//	    htmltoc.WithTargetHeader("esp_common.h"),
//	    htmltoc.WithLogger(logrus.StandardLogger()),
//	)
//
// # Custom Templates
//
// Override the registry sources with text/template files:
//
//	loader, err := htmltoc.NewAssetLoader("/path/to/templates")
//	conv, err := htmltoc.NewConverter(htmltoc.WithAssetLoader(loader))
//
// Template directory structure:
//
//	templates/
//	├── declarations.tmpl  (webpages.h)
//	└── definitions.tmpl   (webpages.c)
package htmltoc
