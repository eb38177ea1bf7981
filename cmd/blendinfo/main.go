package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/kismeter/blendfile"
	"github.com/kismeter/blendfile/dna"
	"github.com/kismeter/blendfile/scene"
	"github.com/kismeter/blendfile/scenegraph"
)

func main() {
	var (
		blendPath   = flag.String("blend", "", "Path to .blend file")
		listBlocks  = flag.Bool("blocks", false, "List file blocks grouped by code")
		dnaFilter   = flag.String("dna", "", "Print DNA structures matching a substring (\"*\" for all)")
		showScene   = flag.Bool("scene", false, "Print the converted scene outline")
		showGraph   = flag.Bool("graph", false, "Print the flattened scene graph")
		showStats   = flag.Bool("stats", false, "Print conversion statistics")
		verbose     = flag.Bool("v", false, "Log fields the tolerant conversion skipped")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *blendPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: blendinfo -blend <file.blend> [-blocks] [-dna name] [-scene] [-graph] [-stats]")
		fmt.Fprintln(os.Stderr, "       blendinfo -blend <file.blend> -i  (interactive mode)")
		os.Exit(1)
	}

	if *verbose {
		if logger, err := zap.NewDevelopment(); err == nil {
			dna.SetLogger(logger)
			scenegraph.SetLogger(logger)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*blendPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*blendPath, *listBlocks, *dnaFilter, *showScene, *showGraph, *showStats); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(path string, listBlocks bool, dnaFilter string, showScene, showGraph, showStats bool) error {
	doc, err := blendfile.Import(path)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Printf("File: %s\n", path)
	fmt.Printf("Header: %s\n", doc.File.Header)
	fmt.Printf("Blocks: %d\n", len(doc.File.Blocks))
	fmt.Printf("DNA structures: %d\n", doc.DB.Catalog.NumStructs())
	fmt.Printf("Scene: %s\n", doc.Scene.ID.Name)

	if listBlocks {
		printBlocks(doc)
	}
	if dnaFilter != "" {
		printDNA(doc, dnaFilter)
	}
	if showScene {
		printScene(doc.Scene)
	}
	if showGraph {
		g, err := doc.Graph()
		if err != nil {
			return fmt.Errorf("flatten: %w", err)
		}
		printGraph(g)
	}
	if showStats {
		printStats(doc.DB.Stats())
	}
	return nil
}

func printBlocks(doc *blendfile.Document) {
	type group struct {
		count int
		bytes uint64
	}
	groups := make(map[string]*group)
	for _, b := range doc.File.Blocks {
		g := groups[b.Code]
		if g == nil {
			g = &group{}
			groups[b.Code] = g
		}
		g.count++
		g.bytes += uint64(b.Size)
	}
	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	fmt.Printf("\nBlocks by code:\n")
	for _, code := range codes {
		g := groups[code]
		fmt.Printf("  %-4s %6d block(s) %10d bytes\n", code, g.count, g.bytes)
	}
}

func printDNA(doc *blendfile.Document, filter string) {
	fmt.Printf("\nDNA structures:\n")
	matched := 0
	for _, s := range doc.DB.Catalog.Structures() {
		if filter != "*" && !strings.Contains(s.Name, filter) {
			continue
		}
		matched++
		fmt.Printf("  %s\n", s)
		for _, f := range s.Fields() {
			fmt.Printf("    +%-5d %s\n", f.Offset, f.String())
		}
	}
	if matched == 0 {
		fmt.Printf("  no structure matches %q\n", filter)
	}
}

func printScene(sc *scene.Scene) {
	fmt.Printf("\nScene objects:\n")
	count := 0
	for b, _ := sc.Base.First.(*scene.Base); b != nil; b = b.Next {
		if b.Object == nil {
			continue
		}
		count++
		o := b.Object
		dataType := "-"
		if o.Data != nil {
			dataType = o.Data.DNAType()
		}
		extra := ""
		if m, ok := o.Data.(*scene.Mesh); ok {
			extra = fmt.Sprintf(" (%d verts, %d faces, %d polys)", len(m.Vert), len(m.Face), len(m.Poly))
		}
		fmt.Printf("  %-24s data=%s%s\n", o.ID.Name, dataType, extra)
	}
	if count == 0 {
		fmt.Printf("  none in the base list\n")
	}

	if sc.MasterCollection != nil {
		fmt.Printf("\nCollections:\n")
		visited := make(map[*scene.Collection]bool)
		var walk func(c *scene.Collection, indent string)
		walk = func(c *scene.Collection, indent string) {
			if c == nil || visited[c] {
				return
			}
			visited[c] = true
			fmt.Printf("%s[%s]\n", indent, c.ID.Name)
			for co, _ := c.GObject.First.(*scene.CollectionObject); co != nil; co = co.Next {
				if co.Object != nil {
					fmt.Printf("%s  %s\n", indent, co.Object.ID.Name)
				}
			}
			for cc, _ := c.Children.First.(*scene.CollectionChild); cc != nil; cc = cc.Next {
				walk(cc.Collection, indent+"  ")
			}
		}
		walk(sc.MasterCollection, "  ")
	}
}

func printGraph(g *scenegraph.Scene) {
	fmt.Printf("\nScene graph: %d mesh(es), %d material(s), %d camera(s), %d light(s)\n",
		len(g.Meshes), len(g.Materials), len(g.Cameras), len(g.Lights))
	var walk func(n *scenegraph.Node, indent string)
	walk = func(n *scenegraph.Node, indent string) {
		line := indent + n.Name
		if len(n.MeshIndices) > 0 {
			mesh := g.Meshes[n.MeshIndices[0]]
			line += fmt.Sprintf(" [mesh %s: %d verts, %d faces]", mesh.Name, len(mesh.Positions), len(mesh.Faces))
		}
		fmt.Println(line)
		for _, c := range n.Children {
			walk(c, indent+"  ")
		}
	}
	walk(g.Root, "  ")
}

func printStats(st dna.Stats) {
	fmt.Printf("\nConversion statistics:\n")
	fmt.Printf("  fields read:       %d\n", st.FieldsRead)
	fmt.Printf("  pointers resolved: %d\n", st.PointersResolved)
	fmt.Printf("  objects cached:    %d\n", st.CachedObjects)
	fmt.Printf("  slices cached:     %d\n", st.CachedSlices)
	fmt.Printf("  cache hits:        %d\n", st.CacheHits)
}
