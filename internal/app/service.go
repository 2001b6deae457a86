package app

import (
	"time"

	"reqtool/internal/adapters"
	"reqtool/internal/ports"
)

type Service struct {
	Manifests    ports.ManifestPort
	Discovery    ports.ManifestDiscoveryPort
	IndexBuilder ports.IndexBuilderPort
	IndexWriter  ports.IndexWriterPort
	OutputReader ports.OutputReaderPort
	Clock        func() time.Time
}

func NewService() Service {
	return Service{
		Manifests:    adapters.NewManifestFileAdapter(),
		Discovery:    adapters.NewManifestDiscoveryAdapter(),
		IndexBuilder: adapters.NewPyPIIndexBuilderAdapter(),
		IndexWriter:  adapters.NewIndexWriterAdapter(),
		OutputReader: adapters.NewOutputReaderAdapter(),
		Clock:        time.Now,
	}
}
