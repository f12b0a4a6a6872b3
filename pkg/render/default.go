package render

import (
	"github.com/factsmission/tlds/pkg/rdfa"
	"github.com/factsmission/tlds/pkg/render/nodelink"
)

// Default returns a registry serving the RDFa table as "text/html" followed
// by the node-link diagram formats. opts configure the RDFa serializer.
func Default(opts ...rdfa.Option) *Registry {
	return NewRegistry(
		rdfa.New(opts...),
		nodelink.New(nodelink.Options{}),
	)
}
