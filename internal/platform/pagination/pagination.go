package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

// DefaultPageSize es fijo para las listas de cadastro.
const DefaultPageSize = 5

// Page es la vista paginada de una lista ya cargada completa.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate corta all en la página pedida (1-based): all[(page-1)*size : page*size].
// page < 1 se trata como 1; una página fuera de rango devuelve Items vacío.
func Paginate[T any](all []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(all)
	out := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: TotalPages(total, size),
	}

	// comparar contra TotalPages antes de multiplicar: page viene del query y (page-1)*size puede desbordar
	if page > out.TotalPages {
		return out
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	out.Items = append(out.Items, all[start:end]...)
	return out
}

// TotalPages = ceil(total/size).
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// PageFromRequest lee ?page=; ausente o inválido => 1.
func PageFromRequest(r *http.Request) int {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
