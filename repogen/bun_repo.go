package repogen

import (
	"context"
	"fmt"
	"reflect"

	"github.com/code19m/errx"
	"github.com/uptrace/bun"

	"github.com/rise-and-shine/agenda/sqldb"
)

const (
	CodeMultipleRowsFound = "MULTIPLE_ROWS_FOUND"
	CodeConflict          = "CONFLICT"
)

var _ Repo[struct{}, struct{}] = (*BunRepo[struct{}, struct{}])(nil)

// BunRepo implements Repo over any bun dialect.
type BunRepo[E any, F any] struct {
	idb          bun.IDB
	entityName   string
	schemaName   string
	notFoundCode string

	// conflictCodes maps constraint names to error codes, e.g. "users_email_key" -> "EMAIL_TAKEN".
	conflictCodes map[string]string
	filterFunc    func(q *bun.SelectQuery, filters F) *bun.SelectQuery
}

// BunRepoBuilder builds a BunRepo with defaults: schema "public",
// not found code "OBJECT_NOT_FOUND" and no filtering.
type BunRepoBuilder[E any, F any] struct {
	repo BunRepo[E, F]
}

func NewBunRepoBuilder[E any, F any](idb bun.IDB) *BunRepoBuilder[E, F] {
	return &BunRepoBuilder[E, F]{repo: BunRepo[E, F]{
		idb:           idb,
		entityName:    nameOf(new(E)),
		schemaName:    "public",
		notFoundCode:  "OBJECT_NOT_FOUND",
		conflictCodes: map[string]string{},
		filterFunc:    func(q *bun.SelectQuery, _ F) *bun.SelectQuery { return q },
	}}
}

func (b *BunRepoBuilder[E, F]) WithEntityName(name string) *BunRepoBuilder[E, F] {
	b.repo.entityName = name
	return b
}

func (b *BunRepoBuilder[E, F]) WithSchemaName(name string) *BunRepoBuilder[E, F] {
	b.repo.schemaName = name
	return b
}

func (b *BunRepoBuilder[E, F]) WithNotFoundCode(code string) *BunRepoBuilder[E, F] {
	b.repo.notFoundCode = code
	return b
}

func (b *BunRepoBuilder[E, F]) WithConflictCode(constraint, code string) *BunRepoBuilder[E, F] {
	b.repo.conflictCodes[constraint] = code
	return b
}

func (b *BunRepoBuilder[E, F]) WithFilterFunc(
	fn func(q *bun.SelectQuery, filters F) *bun.SelectQuery,
) *BunRepoBuilder[E, F] {
	b.repo.filterFunc = fn
	return b
}

func (b *BunRepoBuilder[E, F]) Build() *BunRepo[E, F] {
	repo := b.repo
	return &repo
}

func (r *BunRepo[E, F]) Get(ctx context.Context, filters F) (*E, error) {
	entities := make([]E, 0)
	q := r.idb.NewSelect().Model(&entities).Limit(2) //nolint:mnd // two rows are enough to detect duplicates
	q = r.filterFunc(r.selectTable(q), filters)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(sqldb.ErrorDetails(err, q)))
	}

	switch len(entities) {
	case 0:
		return nil, r.notFound(sqldb.ErrorDetails(nil, q))
	case 1:
		return &entities[0], nil
	default:
		return nil, errx.New(
			fmt.Sprintf("multiple %s found", r.entityName),
			errx.WithCode(CodeMultipleRowsFound),
			errx.WithDetails(sqldb.ErrorDetails(nil, q)),
		)
	}
}

func (r *BunRepo[E, F]) List(ctx context.Context, filters F) ([]E, error) {
	entities := make([]E, 0)
	q := r.idb.NewSelect().Model(&entities)
	q = r.filterFunc(r.selectTable(q), filters)

	err := q.Scan(ctx)
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(sqldb.ErrorDetails(err, q)))
	}

	return entities, nil
}

func (r *BunRepo[E, F]) Count(ctx context.Context, filters F) (int, error) {
	q := r.idb.NewSelect().Model((*E)(nil))
	q = r.filterFunc(r.selectTable(q), filters)

	count, err := q.Count(ctx)
	if err != nil {
		return 0, errx.Wrap(err, errx.WithDetails(sqldb.ErrorDetails(err, q)))
	}

	return count, nil
}

func (r *BunRepo[E, F]) Create(ctx context.Context, entity *E) (*E, error) {
	q := r.idb.NewInsert().Model(entity)
	q = q.ModelTableExpr("?.? AS ?", r.tableIdents(q.GetModel())...)

	_, err := q.Exec(ctx)
	if err != nil {
		return nil, r.writeError("creating", err, q)
	}

	return entity, nil
}

// Update overwrites the row with entity's primary key. When columns are
// given only those are written.
func (r *BunRepo[E, F]) Update(ctx context.Context, entity *E, columns ...string) (*E, error) {
	q := r.idb.NewUpdate().Model(entity).WherePK()
	if len(columns) > 0 {
		q = q.Column(columns...)
	}
	q = q.ModelTableExpr("?.? AS ?", r.tableIdents(q.GetModel())...)

	result, err := q.Exec(ctx)
	if err != nil {
		return nil, r.writeError("updating", err, q)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, errx.Wrap(err, errx.WithDetails(sqldb.ErrorDetails(err, q)))
	}
	if affected == 0 {
		return nil, r.notFound(sqldb.ErrorDetails(nil, q))
	}

	return entity, nil
}

func (r *BunRepo[E, F]) Delete(ctx context.Context, entity *E) error {
	q := r.idb.NewDelete().Model(entity).WherePK()
	q = q.ModelTableExpr("?.? AS ?", r.tableIdents(q.GetModel())...)

	result, err := q.Exec(ctx)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(sqldb.ErrorDetails(err, q)))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(sqldb.ErrorDetails(err, q)))
	}
	if affected == 0 {
		return r.notFound(sqldb.ErrorDetails(nil, q))
	}

	return nil
}

func (r *BunRepo[E, F]) notFound(details errx.D) error {
	return errx.New(
		fmt.Sprintf("%s not found", r.entityName),
		errx.WithType(errx.T_NotFound),
		errx.WithCode(r.notFoundCode),
		errx.WithDetails(details),
	)
}

func (r *BunRepo[E, F]) writeError(action string, err error, q fmt.Stringer) error {
	if !sqldb.IsConflict(err) {
		return errx.Wrap(err, errx.WithDetails(sqldb.ErrorDetails(err, q)))
	}

	code, ok := r.conflictCodes[sqldb.ConstraintName(err)]
	if !ok {
		code = CodeConflict
	}
	return errx.New(
		fmt.Sprintf("conflict while %s %s", action, r.entityName),
		errx.WithType(errx.T_Conflict),
		errx.WithCode(code),
		errx.WithDetails(sqldb.ErrorDetails(err, q)),
	)
}

func (r *BunRepo[E, F]) selectTable(q *bun.SelectQuery) *bun.SelectQuery {
	return q.ModelTableExpr("?.? AS ?", r.tableIdents(q.GetModel())...)
}

// tableIdents qualifies the model's table with the repository schema.
func (r *BunRepo[E, F]) tableIdents(model any) []any {
	table := model.(bun.TableModel).Table() //nolint:errcheck,forcetypeassert // struct models always carry a table
	return []any{bun.Ident(r.schemaName), bun.Ident(table.Name), bun.Ident(table.Alias)}
}

func nameOf(v any) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		return t.Elem().Name()
	}
	return t.Name()
}
