package bunrepo

import (
	"github.com/goliatone/go-activity/pkg/interfaces/store"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func withID(id uuid.UUID) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("id = ?", id)
	}
}

// withDeleted lifts bun's implicit soft-delete filter.
func withDeleted() repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.WhereAllWithDeleted()
	}
}

func withPage(opts store.ListOptions) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if opts.Limit > 0 {
			q = q.Limit(opts.Limit)
		}
		if opts.Offset > 0 {
			q = q.Offset(opts.Offset)
		}
		if opts.IncludeSoftDeleted {
			q = q.WhereAllWithDeleted()
		}
		return q
	}
}

func withTimeRange(field string, opts store.ListOptions) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		if !opts.Since.IsZero() {
			q = q.Where("? >= ?", bun.Ident(field), opts.Since)
		}
		if !opts.Until.IsZero() {
			q = q.Where("? <= ?", bun.Ident(field), opts.Until)
		}
		return q
	}
}

func withFeedFilter(user string, filter store.FeedFilter) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Where("affected_user = ?", user)
		if len(filter.Types) > 0 {
			q = q.Where("? IN (?)", bun.Ident("type"), bun.In(filter.Types))
		}
		if len(filter.Apps) > 0 {
			q = q.Where("app IN (?)", bun.In(filter.Apps))
		}
		if filter.ObjectType != "" {
			q = q.Where("object_type = ?", filter.ObjectType)
		}
		if filter.ObjectID != "" {
			q = q.Where("object_id = ?", filter.ObjectID)
		}
		if filter.ExcludeAuthor {
			q = q.Where("(author IS NULL OR author != ?)", user)
		}
		return q
	}
}
