// internal/erros/erros.go
package erros

import (
	"errors"
	"net/http"
)

// Erros sentinela do domínio. Os serviços anexam contexto com
// fmt.Errorf("...: %w", Err...) e os handlers traduzem para HTTP.
var (
	// ErrValidacao indica payload mal formado ou campo obrigatório ausente.
	ErrValidacao = errors.New("dados inválidos")

	// ErrNaoEncontrado indica que o registro referenciado não existe.
	ErrNaoEncontrado = errors.New("registro não encontrado")

	// ErrAcessoNegado indica que o usuário não tem permissão para a ação.
	ErrAcessoNegado = errors.New("acesso negado")

	// ErrTransicaoInvalida indica uma mudança de status fora da máquina de
	// estados (ex.: reaprovar indicação já decidida, pagar parcela já paga).
	ErrTransicaoInvalida = errors.New("transição de status inválida")
)

// StatusHTTP mapeia um erro do domínio para o código HTTP correspondente.
func StatusHTTP(err error) int {
	switch {
	case errors.Is(err, ErrValidacao):
		return http.StatusBadRequest
	case errors.Is(err, ErrNaoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, ErrAcessoNegado):
		return http.StatusForbidden
	case errors.Is(err, ErrTransicaoInvalida):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Responder escreve o erro com o código HTTP adequado.
func Responder(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), StatusHTTP(err))
}
