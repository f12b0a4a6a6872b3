package rdf

// Namespaces.
const (
	XSD  = "http://www.w3.org/2001/XMLSchema#"
	RDF  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	DC   = "http://purl.org/dc/terms/"
	TLDS = "https://vocab.linked.solutions/tlds/"
)

// Well-known IRIs.
const (
	XSDString     IRI = XSD + "string"
	XSDInteger    IRI = XSD + "integer"
	XSDBoolean    IRI = XSD + "boolean"
	RDFType       IRI = RDF + "type"
	RDFLangString IRI = RDF + "langString"
	DCFormat      IRI = DC + "format"

	// TLDSRenderers links a resource to the renderers available for it.
	TLDSRenderers IRI = TLDS + "renderers"
)
