package app

import (
	"log/slog"

	"github.com/artpar/filetree/internal/config"
	"github.com/artpar/filetree/internal/core"
	"github.com/artpar/filetree/internal/logging"
)

// EventType names a change published to listeners.
type EventType string

const (
	EventNodeAdded    EventType = "node.added"
	EventNodeDeleted  EventType = "node.deleted"
	EventNodeRenamed  EventType = "node.renamed"
	EventNodeMoved    EventType = "node.moved"
	EventEditStarted  EventType = "edit.started"
	EventDropRejected EventType = "drop.rejected"
)

// Event is delivered to listeners after the snapshot has been stored.
type Event struct {
	Type   EventType
	NodeID string
	Tree   core.Tree
}

// Listener receives published events.
type Listener func(Event)

// App owns the current tree snapshot and the edit session and exposes the
// commands a controller may invoke. It is not safe for concurrent use; the
// TUI drives it from a single event loop.
type App struct {
	config   config.Config
	tree     core.Tree
	ids      core.IDGenerator
	labels   core.Labels
	session  *core.EditSession
	deferred *core.DeferredQueue
	logger   *slog.Logger
	hooks    map[EventType][]Listener
	all      []Listener
}

// Option is a function that configures the App.
type Option func(*App)

// New creates a new App with the given options.
func New(opts ...Option) *App {
	deferred := &core.DeferredQueue{}
	app := &App{
		config:   config.DefaultConfig(),
		deferred: deferred,
		session:  core.NewEditSession(deferred),
		logger:   logging.NewNop(),
		hooks:    make(map[EventType][]Listener),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.ids == nil {
		app.ids = app.config.IDGenerator()
	}
	app.labels = app.config.LabelsOrDefault()

	return app
}

// WithConfig sets the application configuration.
func WithConfig(cfg config.Config) Option {
	return func(a *App) {
		a.config = cfg
	}
}

// WithIDGenerator overrides the id generator selected by the config.
func WithIDGenerator(ids core.IDGenerator) Option {
	return func(a *App) {
		a.ids = ids
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithTree seeds the initial snapshot. Editing flags are dropped.
func WithTree(t core.Tree) Option {
	return func(a *App) {
		a.tree = core.WithoutEditing(t)
	}
}

// Config returns the application configuration.
func (a *App) Config() config.Config {
	return a.config
}

// Tree returns the current snapshot. Callers must treat it as read-only.
func (a *App) Tree() core.Tree {
	return a.tree
}

// Session returns the edit session.
func (a *App) Session() *core.EditSession {
	return a.session
}

// Deferred returns the queue the renderer drains after each render.
func (a *App) Deferred() *core.DeferredQueue {
	return a.deferred
}

// EditingID returns the id of the node being edited.
func (a *App) EditingID() (string, bool) {
	id := a.session.EditingID()
	return id, id != ""
}

// Subscribe registers l for every event.
func (a *App) Subscribe(l Listener) {
	a.all = append(a.all, l)
}

// On registers l for events of the given type.
func (a *App) On(t EventType, l Listener) {
	a.hooks[t] = append(a.hooks[t], l)
}

// AddNode appends a new node of the given kind to the root list. It returns
// nil and publishes nothing when the node cannot be created.
func (a *App) AddNode(kind core.Kind) *core.Node {
	tree, node, ok := core.AddNode(a.tree, kind, a.ids, a.labels)
	if !ok {
		a.logger.Debug("add ignored", "kind", kind)
		return nil
	}
	a.commit(EventNodeAdded, node.ID, tree)
	a.logger.Debug("node added", "id", node.ID, "kind", kind)
	return node
}

// DeleteNode removes the node and its subtree. An active edit is committed
// first, since reaching the delete affordance is an outside interaction.
func (a *App) DeleteNode(id string) bool {
	if a.session.Editing() {
		a.CommitEdit()
	}

	tree, ok := core.DeleteNode(a.tree, id)
	if !ok {
		a.logger.Debug("delete ignored", "id", id)
		return false
	}
	a.commit(EventNodeDeleted, id, tree)
	a.logger.Debug("node deleted", "id", id, "remaining", tree.Len())
	return true
}

// BeginEdit puts the node into inline-rename mode, committing any edit in
// progress first.
func (a *App) BeginEdit(id string) bool {
	previous := a.session.EditingID()
	tree, ok := a.session.Begin(a.tree, id)
	if !ok {
		a.logger.Debug("edit not started", "id", id)
		return false
	}
	if previous == id {
		return true
	}
	if previous != "" {
		a.commit(EventNodeRenamed, previous, tree)
	}
	a.commit(EventEditStarted, id, tree)
	a.logger.Debug("edit started", "id", id)
	return true
}

// SetEditText records the inline editor's current text.
func (a *App) SetEditText(text string) {
	a.session.SetPending(text)
}

// CommitEdit renames the edited node to the editor's text.
func (a *App) CommitEdit() bool {
	if !a.session.Editing() {
		return false
	}
	id, text := a.session.EditingID(), a.session.Pending()
	tree := a.session.Commit(a.tree)
	a.commit(EventNodeRenamed, id, tree)
	a.logger.Debug("node renamed", "id", id, "label", text)
	return true
}

// OutsideInteraction commits the active edit, keeping its pending text.
func (a *App) OutsideInteraction() bool {
	if !a.session.Editing() {
		return false
	}
	id := a.session.EditingID()
	tree := a.session.OutsideInteraction(a.tree)
	a.commit(EventNodeRenamed, id, tree)
	a.logger.Debug("edit committed by outside interaction", "id", id)
	return true
}

// Drop applies a finished drag gesture. A rejected drop leaves the snapshot
// untouched.
func (a *App) Drop(ev core.DropEvent) bool {
	if a.session.Editing() {
		a.CommitEdit()
	}

	tree, ok := core.Drop(a.tree, ev)
	if !ok {
		a.publish(EventDropRejected, ev.DragID, a.tree)
		a.logger.Debug("drop rejected", "drag", ev.DragID, "drop", ev.DropID, "gap", ev.DropToGap)
		return false
	}
	a.commit(EventNodeMoved, ev.DragID, tree)
	a.logger.Debug("node moved",
		"drag", ev.DragID,
		"drop", ev.DropID,
		"gap", ev.DropToGap,
		"position", ev.RelativePosition,
	)
	return true
}

func (a *App) commit(t EventType, id string, tree core.Tree) {
	a.tree = tree
	if a.session.Editing() && !core.Contains(tree, a.session.EditingID()) {
		a.session.Reset()
	}
	a.publish(t, id, tree)
}

func (a *App) publish(t EventType, id string, tree core.Tree) {
	ev := Event{Type: t, NodeID: id, Tree: tree}
	for _, l := range a.hooks[t] {
		l(ev)
	}
	for _, l := range a.all {
		l(ev)
	}
}
