package handler

type ServiceParams struct {
	Key string `param:"key"`
}

type PipelineParams struct {
	Format   string   `query:"format"`
	Services []string `query:"service"`
}

type CreateRevisionParams struct {
	Format string `json:"format" query:"format"`
}

type RevisionParams struct {
	RevisionID string `param:"revision_id"`
}

type ConnectionParams struct {
	ConnectionID string `param:"connection_id" json:"connectionId"`
}

type MessageParams struct {
	Data string `json:"data"`
}

type PutParameterParams struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Type      string `json:"type"`
	Overwrite bool   `json:"overwrite"`
}

type GetParameterParams struct {
	Name           string `param:"name"`
	WithDecryption bool   `query:"with_decryption"`
}
