package parse

// MaxDepth is the default bound on document nesting.
const MaxDepth = 256

// MaxAliasNodes is the default bound on the nodes built by expanding
// aliases, counted over the whole document.
const MaxAliasNodes = 1 << 20

type parseOpts struct {
	noAliases     bool
	maxDepth      int
	maxAliasNodes int
	single        bool
}

type ParseOption func(*parseOpts)

// NoAliases rejects documents using anchors and aliases.
func NoAliases() ParseOption {
	return func(o *parseOpts) { o.noAliases = true }
}

// ParseMaxDepth bounds the nesting of containers.
func ParseMaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

// ParseMaxAliasNodes bounds the number of nodes aliases may expand to.
func ParseMaxAliasNodes(n int) ParseOption {
	return func(o *parseOpts) { o.maxAliasNodes = n }
}

// SingleDocument rejects input holding more than one document.
func SingleDocument() ParseOption {
	return func(o *parseOpts) { o.single = true }
}
