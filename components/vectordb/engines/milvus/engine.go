package milvus

import (
	"context"
	"encoding/json"

	milvusClient "github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/brook-ai/brook/components/vectordb"
)

// Engine stores vectors in a milvus deployment. Collections are created on
// first insert with an HNSW cosine index.
type Engine struct {
	db milvusClient.Client
	vectordb.Options
}

var _ vectordb.Engine = (*Engine)(nil)

func New(db milvusClient.Client, opts ...vectordb.Option) *Engine {
	ret := &Engine{
		db: db,
	}
	vectordb.WithEngine(vectordb.Milvus)(&ret.Options)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	return ret
}

func (e *Engine) CreateCollection(ctx context.Context, name string, dim int64) error {
	idField := entity.NewField().WithName("id").WithDataType(entity.FieldTypeVarChar).WithMaxLength(36).WithIsPrimaryKey(true).WithIsAutoID(false)
	vectorField := entity.NewField().WithName("embedding").WithDataType(entity.FieldTypeFloatVector).WithDim(dim)
	contentField := entity.NewField().WithName("content").WithDataType(entity.FieldTypeString)
	metaField := entity.NewField().WithName("meta").WithDataType(entity.FieldTypeJSON).WithIsDynamic(true)
	schema := entity.NewSchema().WithName(name).WithAutoID(false).WithField(idField).WithField(vectorField).WithField(contentField).WithField(metaField)
	if err := e.db.CreateCollection(ctx, schema, 0); err != nil {
		return err
	}
	idxHnsw, err := entity.NewIndexHNSW(entity.COSINE, 8, 200)
	if err != nil {
		return err
	}
	return e.db.CreateIndex(ctx, name, "embedding", idxHnsw, true, milvusClient.WithIndexName("embedding_idx"))
}

func (e *Engine) Insert(ctx context.Context, collectionName string, records ...vectordb.Record) error {
	if len(records) == 0 {
		return nil
	}
	dim := int64(len(records[0].Embedding.Embedding))
	if exists, err := e.db.HasCollection(ctx, collectionName); err != nil {
		return err
	} else if !exists {
		if err := e.CreateCollection(ctx, collectionName, dim); err != nil {
			return err
		}
	}
	n := len(records)
	ids := make([]string, 0, n)
	vectors := make([][]float32, 0, n)
	contents := make([]string, 0, n)
	metas := make([][]byte, 0, n)
	for _, record := range records {
		if record.ID == "" {
			record.ID = record.Embedding.UUID()
		}
		ids = append(ids, record.ID)
		vectors = append(vectors, vectordb.Float32s(record.Embedding.Embedding))
		contents = append(contents, record.Embedding.Object)
		bs, err := json.Marshal(record.Embedding.Meta)
		if err != nil {
			return err
		}
		metas = append(metas, bs)
	}
	_, err := e.db.Insert(ctx, collectionName, "",
		entity.NewColumnVarChar("id", ids),
		entity.NewColumnFloatVector("embedding", int(dim), vectors),
		entity.NewColumnString("content", contents),
		entity.NewColumnJSONBytes("meta", metas),
	)
	return err
}

func (e *Engine) Search(ctx context.Context, vector []float64, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	var option vectordb.SearchOptions
	for _, opt := range opts {
		opt(&option)
	}
	if err := e.db.LoadCollection(ctx, option.Collection, false); err != nil {
		return nil, err
	}
	query := entity.FloatVector(vectordb.Float32s(vector))
	topK := option.TopK
	if topK == 0 {
		topK = e.TopK
	}
	searchParams, err := entity.NewIndexHNSWSearchParam(topK)
	if err != nil {
		return nil, err
	}
	results, err := e.db.Search(ctx, option.Collection, nil, "", []string{"id", "content", "meta"}, []entity.Vector{query}, "embedding", entity.COSINE, topK, searchParams)
	if err != nil {
		return nil, err
	}
	records := make([]vectordb.Record, 0, topK)
	for _, result := range results {
		for i := 0; i < result.ResultCount; i++ {
			var record vectordb.Record
			searchResultToRecord(&result, i, &record)
			records = append(records, record)
		}
	}
	return records, nil
}

func searchResultToRecord(result *milvusClient.SearchResult, idx int, record *vectordb.Record) {
	if idx < len(result.Scores) {
		record.Score = float64(result.Scores[idx])
	}
	if col := result.Fields.GetColumn("id"); col != nil {
		record.ID, _ = col.GetAsString(idx)
	}
	if col := result.Fields.GetColumn("content"); col != nil {
		record.Embedding.Object, _ = col.GetAsString(idx)
	}
	if col := result.Fields.GetColumn("meta"); col != nil {
		if v, err := col.Get(idx); err == nil {
			if bs, ok := v.([]byte); ok {
				json.Unmarshal(bs, &record.Embedding.Meta)
			}
		}
	}
}
