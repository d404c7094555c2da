package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-activity/pkg/activity"
	"github.com/goliatone/go-activity/pkg/feed"
	"github.com/goliatone/go-activity/pkg/interfaces/logger"
	"github.com/goliatone/go-activity/pkg/interfaces/store"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"
)

// Catalog exposes go-command compatible handlers for host transports.
type Catalog struct {
	PublishActivity command.Commander[activity.Event]
	ListFeed        command.Commander[*ListFeed]
	RemoveFeedEntry command.Commander[RemoveFeedEntry]
	ExpireFeed      command.Commander[*ExpireFeed]
}

type publisher interface {
	Publish(ctx context.Context, evt activity.Event)
}

type feedService interface {
	List(ctx context.Context, q feed.Query) (feed.Page, error)
	Remove(ctx context.Context, user string, id uuid.UUID) error
	Expire(ctx context.Context) (int, error)
}

// Dependencies wires the manager and the optional feed service into the
// command catalog.
type Dependencies struct {
	Publisher publisher
	Feed      feedService
	Logger    logger.Logger
}

var errFeedDisabled = errors.New("commands: feed is not enabled")

// NewCatalog builds the command catalog using the supplied dependencies.
// Feed commands fail with an error when no feed service is supplied.
func NewCatalog(deps Dependencies) (*Catalog, error) {
	if deps.Publisher == nil {
		return nil, errors.New("commands: publisher is required")
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}

	return &Catalog{
		PublishActivity: publishCommand{publisher: deps.Publisher, logger: deps.Logger},
		ListFeed:        feedListCommand{svc: deps.Feed},
		RemoveFeedEntry: feedRemoveCommand{svc: deps.Feed},
		ExpireFeed:      feedExpireCommand{svc: deps.Feed, logger: deps.Logger},
	}, nil
}

type publishCommand struct {
	publisher publisher
	logger    logger.Logger
}

// Execute validates the event and hands it to the manager. Delivery failures
// never surface here; only malformed events are rejected.
func (c publishCommand) Execute(ctx context.Context, evt activity.Event) error {
	evt.App = strings.TrimSpace(evt.App)
	evt.Type = strings.TrimSpace(evt.Type)
	evt.AffectedUser = strings.TrimSpace(evt.AffectedUser)
	if err := evt.Validate(); err != nil {
		return err
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	c.publisher.Publish(ctx, evt)
	return nil
}

// ListFeed requests one page of a user's feed. Result is filled on success.
type ListFeed struct {
	User       string    `json:"user"`
	Types      []string  `json:"types,omitempty"`
	Apps       []string  `json:"apps,omitempty"`
	ObjectType string    `json:"object_type,omitempty"`
	ObjectID   string    `json:"object_id,omitempty"`
	ExcludeOwn bool      `json:"exclude_own,omitempty"`
	Since      time.Time `json:"since,omitempty"`
	Limit      int       `json:"limit,omitempty"`
	Offset     int       `json:"offset,omitempty"`

	Result feed.Page `json:"-"`
}

type feedListCommand struct {
	svc feedService
}

func (c feedListCommand) Execute(ctx context.Context, msg *ListFeed) error {
	if msg == nil {
		return errors.New("commands: list feed message is required")
	}
	if c.svc == nil {
		return errFeedDisabled
	}
	page, err := c.svc.List(ctx, feed.Query{
		User: msg.User,
		Filter: store.FeedFilter{
			Types:         msg.Types,
			Apps:          msg.Apps,
			ObjectType:    msg.ObjectType,
			ObjectID:      msg.ObjectID,
			ExcludeAuthor: msg.ExcludeOwn,
		},
		Since:  msg.Since,
		Limit:  msg.Limit,
		Offset: msg.Offset,
	})
	if err != nil {
		return err
	}
	msg.Result = page
	return nil
}

// RemoveFeedEntry hides a single feed entry.
type RemoveFeedEntry struct {
	User string `json:"user"`
	ID   string `json:"id"`
}

type feedRemoveCommand struct {
	svc feedService
}

func (c feedRemoveCommand) Execute(ctx context.Context, msg RemoveFeedEntry) error {
	if c.svc == nil {
		return errFeedDisabled
	}
	id, err := uuid.Parse(strings.TrimSpace(msg.ID))
	if err != nil {
		return errors.New("commands: feed entry id is invalid")
	}
	return c.svc.Remove(ctx, msg.User, id)
}

// ExpireFeed runs feed retention. Removed is filled on success.
type ExpireFeed struct {
	Removed int `json:"removed"`
}

type feedExpireCommand struct {
	svc    feedService
	logger logger.Logger
}

func (c feedExpireCommand) Execute(ctx context.Context, msg *ExpireFeed) error {
	if c.svc == nil {
		return errFeedDisabled
	}
	removed, err := c.svc.Expire(ctx)
	if err != nil {
		c.logger.Error("feed expire failed", logger.Err(err))
		return err
	}
	if msg != nil {
		msg.Removed = removed
	}
	return nil
}
