package engines

import (
	"github.com/brook-ai/brook/components/vectordb/engines/chromem"
	"github.com/brook-ai/brook/components/vectordb/engines/memory"
	"github.com/brook-ai/brook/components/vectordb/engines/milvus"
)

var (
	FromChromem = chromem.New
	FromMemory  = memory.New
	FromMilvus  = milvus.New
)
