// Package ascii parses ASCII line drawings of networks into graphs.
//
// A diagram is a block of text in which runs of alphanumeric characters name
// nodes, chains of the four line-drawing characters (-, |, /, \) form edges,
// and parenthesized text sitting on a line labels that edge:
//
//	n1----(fiber)----n2
//	                  |
//	                  n3
//
// Parsing that text yields a graph with nodes n1, n2, n3 (each carrying its
// grid position), an edge n1--n2 labeled "fiber", and an edge n2--n3. Edge
// lengths count the line-drawing cells between the endpoints.
//
// The parser is deterministic and side-effect free: the same text always
// produces the same graph. Structurally invalid drawings - a line that ends
// nowhere, or three lines meeting in one cell - abort the parse with an
// [*EdgeError] that pinpoints the offending cell and includes a rendered
// fragment of the bad geometry.
//
// # Usage
//
//	g, err := ascii.Parse(`n1---n2`)
//	if err != nil {
//	    var edgeErr *ascii.EdgeError
//	    if errors.As(err, &edgeErr) {
//	        fmt.Println(edgeErr.Snippet) // shows the defect in context
//	    }
//	    return err
//	}
//	fmt.Println(g.NodeCount(), g.EdgeCount())
package ascii
