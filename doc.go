// Package newsletter turns tabular newsletter content from an Excel workbook
// into a paginated, print-ready HTML document, with an optional PDF print
// step via headless Chrome.
//
// # Quick Start
//
// Create a service, generate, and close when done:
//
//	svc := newsletter.New(newsletter.WithOutputRoot("generated"))
//	defer svc.Close()
//
//	result, err := svc.Generate(ctx, newsletter.Input{
//	    WorkbookPath: "newsletter.xlsx",
//	    ImagePaths:   map[string]string{"workshop": "uploads/workshop.jpg"},
//	    SessionID:    "demo",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("wrote", result.HTMLPath)
//
// # Generation Pipeline
//
// Generation follows these stages:
//
//  1. Workbook loading (named sheets to typed records, excelize)
//  2. Text cleaning (duplicate-sentence removal in descriptions)
//  3. Image resolution (path references for branding images, resized
//     base64 payloads for content images)
//  4. Section grouping (events by department, sorted, page-numbered)
//  5. Template binding (embedded multi-page HTML template)
//
// Set Input.PrintPDF to additionally print the saved HTML to PDF. Printing
// requires Chrome/Chromium; go-rod downloads a managed Chromium on first run.
// For containers and CI point ROD_BROWSER_BIN at a pre-installed browser.
//
// # PDF Overlay Editing
//
// Independently of generation, Editor applies drawing primitives onto pages
// of an existing PDF:
//
//	ed, err := newsletter.OpenPDF("report.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ed.AddText(0, "APPROVED", 72, 720, newsletter.TextOptions{FontSize: 18, Color: "#0d9488"})
//	ed.Save("report-stamped.pdf")
//
// Each drawing operation renders onto a blank page-sized canvas and
// composites that overlay onto the target page, leaving existing page
// content intact.
package newsletter
