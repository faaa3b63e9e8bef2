package vectordb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/midc-land-bank/ragserver/common/logger"
	"github.com/midc-land-bank/ragserver/config"
	"github.com/midc-land-bank/ragserver/schema"
)

// Field names in the plot collection. Metadata is stored as a JSON
// string so the land-bank attributes round-trip without a fixed schema.
const (
	fieldID        = "id"
	fieldContent   = "content"
	fieldVector    = "vector"
	fieldMetadata  = "metadata"
	fieldCreatedAt = "created_at"

	contentMaxLength  = 8192
	metadataMaxLength = 8192
	idMaxLength       = 64
)

// Default HNSW parameters. Override via vectordb.mapping in config.
const (
	defaultHNSWM              = 8
	defaultHNSWEfConstruction = 64
	defaultHNSWEfSearch       = 64
)

// MilvusProvider implements VectorStoreProvider on a Milvus collection
// with an HNSW index over inner-product similarity.
type MilvusProvider struct {
	cli        client.Client
	collection string
	dimensions int
	efSearch   int
}

// NewMilvusProvider connects to Milvus and ensures the collection,
// index, and load state.
func NewMilvusProvider(ctx context.Context, cfg *config.VectorDBConfig, dimensions int) (*MilvusProvider, error) {
	address := cfg.Host
	if cfg.Port > 0 {
		address = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	}
	cli, err := client.NewClient(ctx, client.Config{
		Address:  address,
		Username: cfg.Username,
		Password: cfg.Password,
		DBName:   cfg.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to milvus at %s: %w", address, err)
	}

	p := &MilvusProvider{
		cli:        cli,
		collection: cfg.Collection,
		dimensions: dimensions,
		efSearch:   defaultHNSWEfSearch,
	}
	if ef, err := cfg.Mapping.Search.ParamsInt64("ef"); err == nil && ef > 0 {
		p.efSearch = int(ef)
	}
	if err := p.ensureCollection(ctx, cfg); err != nil {
		cli.Close()
		return nil, err
	}
	return p, nil
}

func (p *MilvusProvider) ensureCollection(ctx context.Context, cfg *config.VectorDBConfig) error {
	has, err := p.cli.HasCollection(ctx, p.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection %s: %w", p.collection, err)
	}
	if !has {
		collSchema := &entity.Schema{
			CollectionName: p.collection,
			Description:    "MIDC land bank plot documents",
			Fields: []*entity.Field{
				{
					Name:       fieldID,
					DataType:   entity.FieldTypeVarChar,
					PrimaryKey: true,
					TypeParams: map[string]string{"max_length": fmt.Sprintf("%d", idMaxLength)},
				},
				{
					Name:       fieldContent,
					DataType:   entity.FieldTypeVarChar,
					TypeParams: map[string]string{"max_length": fmt.Sprintf("%d", contentMaxLength)},
				},
				{
					Name:       fieldMetadata,
					DataType:   entity.FieldTypeVarChar,
					TypeParams: map[string]string{"max_length": fmt.Sprintf("%d", metadataMaxLength)},
				},
				{
					Name:     fieldCreatedAt,
					DataType: entity.FieldTypeInt64,
				},
				{
					Name:       fieldVector,
					DataType:   entity.FieldTypeFloatVector,
					TypeParams: map[string]string{"dim": fmt.Sprintf("%d", p.dimensions)},
				},
			},
		}
		if err := p.cli.CreateCollection(ctx, collSchema, 1); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", p.collection, err)
		}

		m, efConstruction := defaultHNSWM, defaultHNSWEfConstruction
		if v, err := cfg.Mapping.Index.ParamsInt64("M"); err == nil && v > 0 {
			m = int(v)
		}
		if v, err := cfg.Mapping.Index.ParamsInt64("efConstruction"); err == nil && v > 0 {
			efConstruction = int(v)
		}
		idx, err := entity.NewIndexHNSW(entity.IP, m, efConstruction)
		if err != nil {
			return fmt.Errorf("failed to build hnsw index definition: %w", err)
		}
		if err := p.cli.CreateIndex(ctx, p.collection, fieldVector, idx, false); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", p.collection, err)
		}
		logger.Infof("created milvus collection %s (dim=%d)", p.collection, p.dimensions)
	}

	if err := p.cli.LoadCollection(ctx, p.collection, false); err != nil {
		return fmt.Errorf("failed to load collection %s: %w", p.collection, err)
	}
	return nil
}

// AddDocs inserts documents column-wise and flushes.
func (p *MilvusProvider) AddDocs(ctx context.Context, docs []schema.Document) error {
	if len(docs) == 0 {
		return nil
	}

	ids := make([]string, len(docs))
	contents := make([]string, len(docs))
	metadatas := make([]string, len(docs))
	createdAts := make([]int64, len(docs))
	vectors := make([][]float32, len(docs))

	for i, doc := range docs {
		if len(doc.Vector) != p.dimensions {
			return fmt.Errorf("document %s: vector dimension %d, want %d", doc.ID, len(doc.Vector), p.dimensions)
		}
		meta, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("document %s: failed to marshal metadata: %w", doc.ID, err)
		}
		createdAt := doc.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		ids[i] = doc.ID
		contents[i] = doc.Content
		metadatas[i] = string(meta)
		createdAts[i] = createdAt.Unix()
		vectors[i] = doc.Vector
	}

	_, err := p.cli.Insert(ctx, p.collection, "",
		entity.NewColumnVarChar(fieldID, ids),
		entity.NewColumnVarChar(fieldContent, contents),
		entity.NewColumnVarChar(fieldMetadata, metadatas),
		entity.NewColumnInt64(fieldCreatedAt, createdAts),
		entity.NewColumnFloatVector(fieldVector, p.dimensions, vectors),
	)
	if err != nil {
		return fmt.Errorf("failed to insert %d documents: %w", len(docs), err)
	}
	if err := p.cli.Flush(ctx, p.collection, false); err != nil {
		return fmt.Errorf("failed to flush collection %s: %w", p.collection, err)
	}
	logger.Infof("inserted %d documents into %s", len(docs), p.collection)
	return nil
}

// SearchDocs runs vector search and filters results below the score
// threshold.
func (p *MilvusProvider) SearchDocs(ctx context.Context, vector []float32, opts *schema.SearchOptions) ([]schema.SearchResult, error) {
	topK := 10
	threshold := 0.0
	if opts != nil {
		if opts.TopK > 0 {
			topK = opts.TopK
		}
		threshold = opts.Threshold
	}

	sp, err := entity.NewIndexHNSWSearchParam(p.efSearch)
	if err != nil {
		return nil, fmt.Errorf("failed to build search params: %w", err)
	}

	searchResults, err := p.cli.Search(ctx, p.collection, nil, "",
		[]string{fieldID, fieldContent, fieldMetadata, fieldCreatedAt},
		[]entity.Vector{entity.FloatVector(vector)},
		fieldVector, entity.IP, topK, sp,
	)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	var results []schema.SearchResult
	for _, sr := range searchResults {
		for i := 0; i < sr.ResultCount; i++ {
			score := float64(sr.Scores[i])
			if score < threshold {
				continue
			}
			doc, err := p.rowToDocument(sr.Fields, i)
			if err != nil {
				logger.Warnf("skipping malformed search row: %v", err)
				continue
			}
			results = append(results, schema.SearchResult{Document: doc, Score: score})
		}
	}
	return results, nil
}

// ListDocs queries stored documents without their vectors.
func (p *MilvusProvider) ListDocs(ctx context.Context, limit int) ([]schema.Document, error) {
	if limit <= 0 {
		limit = 100
	}
	rs, err := p.cli.Query(ctx, p.collection, nil, fmt.Sprintf("%s != ''", fieldID),
		[]string{fieldID, fieldContent, fieldMetadata, fieldCreatedAt},
		client.WithLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", p.collection, err)
	}

	count := 0
	for _, col := range rs {
		if col.Name() == fieldID {
			count = col.Len()
		}
	}
	docs := make([]schema.Document, 0, count)
	for i := 0; i < count; i++ {
		doc, err := p.rowToDocument(rs, i)
		if err != nil {
			logger.Warnf("skipping malformed row: %v", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// DeleteDocs deletes documents by primary key.
func (p *MilvusProvider) DeleteDocs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := p.cli.DeleteByPks(ctx, p.collection, "", entity.NewColumnVarChar(fieldID, ids)); err != nil {
		return fmt.Errorf("failed to delete %d documents: %w", len(ids), err)
	}
	return nil
}

// Count returns the collection row count.
func (p *MilvusProvider) Count(ctx context.Context) (int64, error) {
	stats, err := p.cli.GetCollectionStatistics(ctx, p.collection)
	if err != nil {
		return 0, fmt.Errorf("failed to read collection statistics: %w", err)
	}
	var count int64
	if _, err := fmt.Sscanf(stats["row_count"], "%d", &count); err != nil {
		return 0, fmt.Errorf("unexpected row_count %q: %w", stats["row_count"], err)
	}
	return count, nil
}

// Close releases the Milvus connection.
func (p *MilvusProvider) Close() error {
	return p.cli.Close()
}

// rowToDocument assembles a Document from result columns at row i.
func (p *MilvusProvider) rowToDocument(cols []entity.Column, i int) (schema.Document, error) {
	var doc schema.Document
	for _, col := range cols {
		switch col.Name() {
		case fieldID, fieldContent, fieldMetadata:
			vc, ok := col.(*entity.ColumnVarChar)
			if !ok {
				return doc, fmt.Errorf("column %s has unexpected type", col.Name())
			}
			val, err := vc.ValueByIdx(i)
			if err != nil {
				return doc, fmt.Errorf("column %s row %d: %w", col.Name(), i, err)
			}
			switch col.Name() {
			case fieldID:
				doc.ID = val
			case fieldContent:
				doc.Content = val
			case fieldMetadata:
				if val != "" {
					if err := json.Unmarshal([]byte(val), &doc.Metadata); err != nil {
						return doc, fmt.Errorf("row %d: failed to decode metadata: %w", i, err)
					}
				}
			}
		case fieldCreatedAt:
			ic, ok := col.(*entity.ColumnInt64)
			if !ok {
				return doc, fmt.Errorf("column %s has unexpected type", col.Name())
			}
			val, err := ic.ValueByIdx(i)
			if err != nil {
				return doc, fmt.Errorf("column %s row %d: %w", col.Name(), i, err)
			}
			doc.CreatedAt = time.Unix(val, 0)
		}
	}
	return doc, nil
}
