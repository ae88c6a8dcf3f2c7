package services_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/models"
	"github.com/s-vinaya/Vinaya-s-Pharmacy-Portal-sub000/app/services"
)

// In-memory fakes for the service collaborator interfaces. Not-found is a
// nil result, matching the repository contract.

func passTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// ─── Users ────────────────────────────────────────────────────────────────────

type fakeUsers struct {
	users map[uint]models.User
}

func newFakeUsers(users ...models.User) *fakeUsers {
	f := &fakeUsers{users: map[uint]models.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := u
	return &cp, nil
}

// ─── Addresses ────────────────────────────────────────────────────────────────

type fakeAddresses struct {
	addrs map[uint]models.Address
}

func newFakeAddresses(addrs ...models.Address) *fakeAddresses {
	f := &fakeAddresses{addrs: map[uint]models.Address{}}
	for _, a := range addrs {
		f.addrs[a.ID] = a
	}
	return f
}

func (f *fakeAddresses) FindByID(_ context.Context, id uint) (*models.Address, error) {
	a, ok := f.addrs[id]
	if !ok {
		return nil, nil
	}
	cp := a
	return &cp, nil
}

// ─── Medicines ────────────────────────────────────────────────────────────────

type fakeMedicines struct {
	mu   sync.Mutex
	meds map[uint]*models.Medicine
}

func newFakeMedicines(meds ...models.Medicine) *fakeMedicines {
	f := &fakeMedicines{meds: map[uint]*models.Medicine{}}
	for i := range meds {
		m := meds[i]
		f.meds[m.ID] = &m
	}
	return f
}

func (f *fakeMedicines) FindByID(_ context.Context, id uint) (*models.Medicine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meds[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMedicines) DecrementStock(_ context.Context, id uint, qty int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meds[id]
	if !ok || m.Stock < qty {
		return false, nil
	}
	m.Stock -= qty
	return true, nil
}

func (f *fakeMedicines) IncrementStock(_ context.Context, id uint, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meds[id]
	if !ok {
		return fmt.Errorf("medicine %d not found", id)
	}
	m.Stock += qty
	return nil
}

func (f *fakeMedicines) stock(id uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meds[id].Stock
}

// ─── Prescriptions ────────────────────────────────────────────────────────────

type fakePrescriptions struct {
	mu     sync.Mutex
	rows   map[uint]*models.Prescription
	nextID uint
}

func newFakePrescriptions(rows ...models.Prescription) *fakePrescriptions {
	f := &fakePrescriptions{rows: map[uint]*models.Prescription{}, nextID: 1}
	for i := range rows {
		p := rows[i]
		f.rows[p.ID] = &p
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
	}
	return f
}

func (f *fakePrescriptions) FindByID(_ context.Context, id uint) (*models.Prescription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePrescriptions) Create(_ context.Context, p *models.Prescription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePrescriptions) Update(_ context.Context, p *models.Prescription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePrescriptions) Delete(_ context.Context, p *models.Prescription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, p.ID)
	return nil
}

// ─── Orders ───────────────────────────────────────────────────────────────────

type fakeOrders struct {
	mu     sync.Mutex
	rows   map[uint]*models.Order
	nextID uint
}

func newFakeOrders(rows ...models.Order) *fakeOrders {
	f := &fakeOrders{rows: map[uint]*models.Order{}, nextID: 1}
	for i := range rows {
		o := rows[i]
		f.rows[o.ID] = &o
		if o.ID >= f.nextID {
			f.nextID = o.ID + 1
		}
	}
	return f
}

func (f *fakeOrders) FindByID(_ context.Context, id uint) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]models.OrderItem(nil), o.Items...)
	return &cp, nil
}

func (f *fakeOrders) All(_ context.Context) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Order, 0, len(f.rows))
	for _, o := range f.rows {
		cp := *o
		cp.Items = append([]models.OrderItem(nil), o.Items...)
		out = append(out, cp)
	}
	return out, nil
}

func (f *fakeOrders) Create(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.ID = f.nextID
	f.nextID++
	cp := *order
	cp.Items = append([]models.OrderItem(nil), order.Items...)
	f.rows[order.ID] = &cp
	return nil
}

func (f *fakeOrders) Update(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *order
	cp.Items = append([]models.OrderItem(nil), order.Items...)
	f.rows[order.ID] = &cp
	return nil
}

func (f *fakeOrders) Delete(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, order.ID)
	return nil
}

// ─── Gate / notifier / files ──────────────────────────────────────────────────

type fakeGate struct {
	err error
}

func (f *fakeGate) ValidateForStatusAdvance(_ context.Context, _ *models.Order, _ models.OrderStatus) error {
	return f.err
}

type fakeNotifier struct {
	mu         sync.Mutex
	approvals  []string
	rejections []string
	reasons    []string
	err        error
}

func (f *fakeNotifier) SendApproval(email, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.approvals = append(f.approvals, email)
	return f.err
}

func (f *fakeNotifier) SendRejection(email, _ string, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejections = append(f.rejections, email)
	f.reasons = append(f.reasons, reason)
	return f.err
}

type fakeFiles struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{files: map[string][]byte{}}
}

func (f *fakeFiles) Put(path string, content []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = content
	return nil
}

func (f *fakeFiles) Get(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("file %s not found", path)
	}
	return c, nil
}

func (f *fakeFiles) Exists(path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[path]
	return ok
}

func (f *fakeFiles) Delete(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
	return nil
}

func (f *fakeFiles) URL(path string) string { return "http://localhost:8080/storage/" + path }

// Compile-time checks that the fakes satisfy the service contracts.
var (
	_ services.UserFinder        = (*fakeUsers)(nil)
	_ services.AddressFinder     = (*fakeAddresses)(nil)
	_ services.MedicineStore     = (*fakeMedicines)(nil)
	_ services.PrescriptionStore = (*fakePrescriptions)(nil)
	_ services.OrderStore        = (*fakeOrders)(nil)
	_ services.StatusGate        = (*fakeGate)(nil)
	_ services.Notifier          = (*fakeNotifier)(nil)
	_ services.FileStore         = (*fakeFiles)(nil)
)
