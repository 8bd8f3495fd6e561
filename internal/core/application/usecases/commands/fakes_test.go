package commands_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"haulage/internal/core/application/usecases/commands"
	"haulage/internal/core/domain/model/customer"
	"haulage/internal/core/domain/model/dispatch"
	"haulage/internal/core/domain/model/exceptionlog"
	"haulage/internal/core/domain/model/kernel"
	"haulage/internal/core/domain/model/material"
	"haulage/internal/core/domain/model/media"
	"haulage/internal/core/domain/model/order"
	"haulage/internal/core/domain/model/truck"
	"haulage/internal/core/domain/model/user"
	"haulage/internal/core/ports"
	"haulage/internal/pkg/errs"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory stand-in for the database. It keeps the
// aggregates handlers hand it and serves the same pointers back, which is
// enough to follow a workflow end to end without PostgreSQL.
type memStore struct {
	mu sync.Mutex

	trucks     map[kernel.UUID]*truck.Truck
	truckOrder []kernel.UUID
	orders     map[kernel.UUID]*order.Order
	dispatches map[kernel.UUID]*dispatch.Dispatch
	materials  map[string]*material.Material
	customers  map[kernel.UUID]*customer.Customer
	users      map[kernel.UUID]*user.User
	media      []*media.Media
	exceptions map[kernel.UUID]*exceptionlog.Exception

	commits int
}

func newMemStore() *memStore {
	return &memStore{
		trucks:     map[kernel.UUID]*truck.Truck{},
		orders:     map[kernel.UUID]*order.Order{},
		dispatches: map[kernel.UUID]*dispatch.Dispatch{},
		materials:  map[string]*material.Material{},
		customers:  map[kernel.UUID]*customer.Customer{},
		users:      map[kernel.UUID]*user.User{},
		exceptions: map[kernel.UUID]*exceptionlog.Exception{},
	}
}

func notFound(param string, id any) error {
	return errs.NewObjectNotFoundError(param, id)
}

// memUoW satisfies every unit of work interface of the commands package.
type memUoW struct {
	s *memStore
}

func (u memUoW) Begin(context.Context) error    { return nil }
func (u memUoW) Rollback(context.Context) error { return nil }
func (u memUoW) Commit(context.Context) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	u.s.commits++
	return nil
}

func (u memUoW) TruckRepository() ports.TruckRepository         { return memTrucks{u.s} }
func (u memUoW) OrderRepository() ports.OrderRepository         { return memOrders{u.s} }
func (u memUoW) DispatchRepository() ports.DispatchRepository   { return memDispatches{u.s} }
func (u memUoW) MaterialRepository() ports.MaterialRepository   { return memMaterials{u.s} }
func (u memUoW) CustomerRepository() ports.CustomerRepository   { return memCustomers{u.s} }
func (u memUoW) UserRepository() ports.UserRepository           { return memUsers{u.s} }
func (u memUoW) MediaRepository() ports.MediaRepository         { return memMedia{u.s} }
func (u memUoW) ExceptionRepository() ports.ExceptionRepository { return memExceptions{u.s} }

type memFactory[T any] struct {
	uow T
}

func (f memFactory[T]) Create() T { return f.uow }

type memTrucks struct{ s *memStore }

func (r memTrucks) Add(_ context.Context, t *truck.Truck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.trucks {
		if existing.Plate() == t.Plate() {
			return errs.NewValueIsInvalidError("plate")
		}
	}
	r.s.trucks[t.ID()] = t
	r.s.truckOrder = append(r.s.truckOrder, t.ID())
	return nil
}

func (r memTrucks) Update(_ context.Context, t *truck.Truck) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.trucks[t.ID()] = t
	return nil
}

func (r memTrucks) Get(_ context.Context, id kernel.UUID) (*truck.Truck, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.trucks[id]; ok {
		return t, nil
	}
	return nil, notFound("truck", id)
}

func (r memTrucks) GetForUpdate(ctx context.Context, id kernel.UUID) (*truck.Truck, error) {
	return r.Get(ctx, id)
}

func (r memTrucks) GetByPlate(_ context.Context, plate string) (*truck.Truck, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.trucks {
		if t.Plate() == plate {
			return t, nil
		}
	}
	return nil, notFound("plate", plate)
}

func (r memTrucks) LockFirstAvailable(context.Context) (*truck.Truck, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range r.s.truckOrder {
		if t := r.s.trucks[id]; t.IsAvailable() {
			return t, nil
		}
	}
	return nil, notFound("truck", "first available")
}

type memOrders struct{ s *memStore }

func (r memOrders) Add(_ context.Context, o *order.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.orders[o.ID()] = o
	return nil
}

func (r memOrders) Update(ctx context.Context, o *order.Order) error {
	return r.Add(ctx, o)
}

func (r memOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[id]; ok {
		return o, nil
	}
	return nil, notFound("order", id)
}

func (r memOrders) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.Get(ctx, id)
}

func (r memOrders) Delete(_ context.Context, id kernel.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return notFound("order", id)
	}
	delete(r.s.orders, id)
	return nil
}

type memDispatches struct{ s *memStore }

func (r memDispatches) Add(_ context.Context, d *dispatch.Dispatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.dispatches[d.ID()] = d
	return nil
}

func (r memDispatches) Update(ctx context.Context, d *dispatch.Dispatch) error {
	return r.Add(ctx, d)
}

func (r memDispatches) Get(_ context.Context, id kernel.UUID) (*dispatch.Dispatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.dispatches[id]; ok {
		return d, nil
	}
	return nil, notFound("dispatch", id)
}

func (r memDispatches) GetForUpdate(ctx context.Context, id kernel.UUID) (*dispatch.Dispatch, error) {
	return r.Get(ctx, id)
}

func (r memDispatches) ListByOrderForUpdate(_ context.Context, orderID kernel.UUID) ([]*dispatch.Dispatch, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*dispatch.Dispatch
	for _, d := range r.s.dispatches {
		if d.OrderID() == orderID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r memDispatches) Delete(_ context.Context, id kernel.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.dispatches[id]; !ok {
		return notFound("dispatch", id)
	}
	delete(r.s.dispatches, id)
	kept := r.s.media[:0]
	for _, m := range r.s.media {
		if m.DispatchID() != id {
			kept = append(kept, m)
		}
	}
	r.s.media = kept
	for eid, e := range r.s.exceptions {
		if e.DispatchID() == id {
			delete(r.s.exceptions, eid)
		}
	}
	return nil
}

type memMaterials struct{ s *memStore }

func (r memMaterials) Add(_ context.Context, m *material.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[m.Name()]; ok {
		return errs.NewValueIsInvalidError("name")
	}
	r.s.materials[m.Name()] = m
	return nil
}

func (r memMaterials) Update(_ context.Context, m *material.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.materials[m.Name()] = m
	return nil
}

func (r memMaterials) Get(_ context.Context, id kernel.UUID) (*material.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.materials {
		if m.ID() == id {
			return m, nil
		}
	}
	return nil, notFound("material", id)
}

func (r memMaterials) GetForUpdate(ctx context.Context, id kernel.UUID) (*material.Material, error) {
	return r.Get(ctx, id)
}

func (r memMaterials) GetByName(_ context.Context, name string) (*material.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.materials[name]; ok {
		return m, nil
	}
	return nil, notFound("material", name)
}

func (r memMaterials) LockOrSeed(ctx context.Context, name string) (*material.Material, bool, error) {
	if m, err := r.GetByName(ctx, name); err == nil {
		return m, false, nil
	}
	m, err := material.Seed(name)
	if err != nil {
		return nil, false, err
	}
	if err = r.Add(ctx, m); err != nil {
		return nil, false, err
	}
	return m, true, nil
}

func (r memMaterials) ListBelow(_ context.Context, threshold decimal.Decimal) ([]*material.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*material.Material
	for _, m := range r.s.materials {
		if m.IsLow(threshold) {
			out = append(out, m)
		}
	}
	return out, nil
}

type memCustomers struct{ s *memStore }

func (r memCustomers) Add(_ context.Context, c *customer.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[c.ID()] = c
	return nil
}

func (r memCustomers) Update(ctx context.Context, c *customer.Customer) error {
	return r.Add(ctx, c)
}

func (r memCustomers) Get(_ context.Context, id kernel.UUID) (*customer.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.customers[id]; ok {
		return c, nil
	}
	return nil, notFound("customer", id)
}

type memUsers struct{ s *memStore }

func (r memUsers) Add(_ context.Context, u *user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID()] = u
	return nil
}

func (r memUsers) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return u, nil
	}
	return nil, notFound("user", id)
}

func (r memUsers) GetByUsername(_ context.Context, username string) (*user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, notFound("user", username)
}

type memMedia struct{ s *memStore }

func (r memMedia) Add(_ context.Context, m *media.Media) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.media = append(r.s.media, m)
	return nil
}

type memExceptions struct{ s *memStore }

func (r memExceptions) Add(_ context.Context, e *exceptionlog.Exception) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.exceptions[e.ID()] = e
	return nil
}

func (r memExceptions) Update(ctx context.Context, e *exceptionlog.Exception) error {
	return r.Add(ctx, e)
}

func (r memExceptions) GetForUpdate(_ context.Context, id kernel.UUID) (*exceptionlog.Exception, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.exceptions[id]; ok {
		return e, nil
	}
	return nil, notFound("exception", id)
}

// memEvidence stores images in memory and fails any file named in failOn.
type memEvidence struct {
	mu      sync.Mutex
	stored  []ports.EvidenceUpload
	failOn  map[string]bool
	counter int
}

func (e *memEvidence) Store(_ context.Context, upload ports.EvidenceUpload) (string, error) {
	if e.failOn[upload.FileName] {
		return "", errors.New("blob store unavailable")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.counter++
	e.stored = append(e.stored, upload)
	return "mem://" + upload.DispatchID.String() + "/" + upload.FileName, nil
}

type recordedEvents struct {
	mu     sync.Mutex
	events []ports.Event
}

func (p *recordedEvents) Publish(_ context.Context, event ports.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordedEvents) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

var (
	admin    = ports.Identity{UserID: kernel.NewUUID(), Capability: ports.CapabilityAdmin}
	operator = ports.Identity{UserID: kernel.NewUUID(), Capability: ports.CapabilityOperator}
	nobody   = ports.Identity{UserID: kernel.NewUUID(), Capability: ports.CapabilityNone}
	noon     = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
)

// engineHarness wires every handler against one memStore.
type engineHarness struct {
	store    *memStore
	events   *recordedEvents
	evidence *memEvidence
	engine   commands.Engine
	uows     memFactory[commands.UoW]
	recorder *commands.EvidenceRecorder
}

func newHarness() *engineHarness {
	s := newMemStore()
	events := &recordedEvents{}
	evidence := &memEvidence{failOn: map[string]bool{}}
	engine := commands.Engine{
		Clock:     kernel.FixedClock{At: noon},
		Publisher: events,
		Logger:    zerolog.Nop(),
	}
	return &engineHarness{
		store:    s,
		events:   events,
		evidence: evidence,
		engine:   engine,
		uows:     memFactory[commands.UoW]{uow: memUoW{s}},
		recorder: commands.NewEvidenceRecorder(evidence, memFactory[commands.MediaUoW]{uow: memUoW{s}}, engine, 2),
	}
}

func (h *engineHarness) transitions() commands.ApplyDispatchTransitionCommandHandler {
	return commands.NewApplyDispatchTransitionCommandHandler(h.uows, h.recorder, h.engine)
}

func (h *engineHarness) addTruck(plate string, capacity int64) *truck.Truck {
	t, err := truck.NewTruck(kernel.NewUUID(), plate, decimal.NewFromInt(capacity), "Driver "+plate)
	if err != nil {
		panic(err)
	}
	_ = memTrucks{h.store}.Add(context.Background(), t)
	return t
}

func (h *engineHarness) addCustomer() *customer.Customer {
	c, err := customer.NewCustomer(kernel.NewUUID(), "Acme Builders", "+1 555 0100", "ops@acme.test")
	if err != nil {
		panic(err)
	}
	_ = memCustomers{h.store}.Add(context.Background(), c)
	return c
}

func (h *engineHarness) addMaterial(name string, stock int64) *material.Material {
	m, err := material.NewMaterial(kernel.NewUUID(), name, decimal.NewFromInt(stock), "")
	if err != nil {
		panic(err)
	}
	_ = memMaterials{h.store}.Add(context.Background(), m)
	return m
}

// placeOrder creates an order through the handler, so auto-assignment runs.
func (h *engineHarness) placeOrder(customerID kernel.UUID, materialType string, qty int64) commands.CreateOrderResult {
	cmd, err := commands.NewCreateOrderCommand(admin, kernel.NewUUID(), customerID, materialType, decimal.NewFromInt(qty))
	if err != nil {
		panic(err)
	}
	handler := commands.NewCreateOrderCommandHandler(h.uows, h.engine)
	res, err := handler.Handle(context.Background(), cmd)
	if err != nil {
		panic(err)
	}
	return res
}
