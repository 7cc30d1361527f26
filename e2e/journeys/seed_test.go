package journeys

import "github.com/artpar/filetree/internal/core"

// seedTree is the tree every journey starts from:
//
//	src/
//	  main.go
//	docs/
//	README.md
func seedTree() core.Tree {
	return core.Tree{
		{ID: "src", Label: "src", Kind: core.KindFolder, Children: []*core.Node{
			{ID: "main", Label: "main.go", Kind: core.KindFile},
		}},
		{ID: "docs", Label: "docs", Kind: core.KindFolder, Children: []*core.Node{}},
		{ID: "readme", Label: "README.md", Kind: core.KindFile},
	}
}
