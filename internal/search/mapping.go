package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
)

const (
	fieldTags   = "tags"
	fieldWeight = "weight"
)

// buildIndexMapping indexes tag ids verbatim so facet terms are the ids themselves.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = keyword.Name

	doc := bleve.NewDocumentMapping()

	tags := bleve.NewKeywordFieldMapping()
	tags.Store = false
	doc.AddFieldMappingsAt(fieldTags, tags)

	weight := bleve.NewNumericFieldMapping()
	weight.Store = false
	doc.AddFieldMappingsAt(fieldWeight, weight)

	indexMapping.DefaultMapping = doc
	return indexMapping
}
