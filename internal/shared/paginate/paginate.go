// Package paginate segue tokens de continuação das APIs de listagem da AWS.
package paginate

import "context"

// PageFunc fetches one page. token is nil on the first call; a nil or empty next token
// marks the last page.
type PageFunc[T any] func(ctx context.Context, token *string) (items []T, next *string, err error)

// Collect chama fetch até o último token e concatena as páginas em ordem.
// Em caso de erro retorna os itens já coletados junto com o erro.
func Collect[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	var (
		all   []T
		token *string
	)
	for {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		items, next, err := fetch(ctx, token)
		if err != nil {
			return all, err
		}
		all = append(all, items...)
		if next == nil || *next == "" {
			return all, nil
		}
		token = next
	}
}
