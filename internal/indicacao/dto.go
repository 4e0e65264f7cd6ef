package indicacao

// DTO usado no POST /indicacoes
type CriarIndicacaoDTO struct {
	NomeCliente   string `json:"nomeCliente"`
	Email         string `json:"email"`
	Telefone      string `json:"telefone"`
	Origem        string `json:"origem"`
	Segmento      string `json:"segmento"`
	SegmentoOutro string `json:"segmentoOutro"`
	// EmbaixadoraID só é considerado quando o criador é admin
	EmbaixadoraID uint `json:"embaixadoraId"`
}

// DTO usado no PUT /indicacoes/{id} (dados de contato; status tem rota própria)
type AtualizarIndicacaoDTO struct {
	NomeCliente   string `json:"nomeCliente"`
	Email         string `json:"email"`
	Telefone      string `json:"telefone"`
	Origem        string `json:"origem"`
	Segmento      string `json:"segmento"`
	SegmentoOutro string `json:"segmentoOutro"`
}

// DTO usado no PUT /indicacoes/{id}/status
type StatusDTO struct {
	Status string `json:"status"`
}
