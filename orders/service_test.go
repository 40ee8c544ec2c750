package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayushsiwach/fruit-seller/errs"
	"github.com/aayushsiwach/fruit-seller/models"
)

type fakeInventory struct {
	products map[string]models.Product
	err      error
}

func (f *fakeInventory) GetByIDs(_ context.Context, ids []string) ([]models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type reserveCall struct {
	ProductID string
	Qty       int
}

type fakeReserver struct {
	failOn   string // product id whose Reserve call fails
	failWith error

	reserves []reserveCall
	releases []reserveCall
}

func (f *fakeReserver) Reserve(_ context.Context, productID string, qty int) error {
	if productID == f.failOn {
		return f.failWith
	}
	f.reserves = append(f.reserves, reserveCall{productID, qty})
	return nil
}

func (f *fakeReserver) Release(_ context.Context, productID string, qty int) error {
	f.releases = append(f.releases, reserveCall{productID, qty})
	return nil
}

type fakeOrderStore struct {
	created   []*models.Order
	createErr error
	orders    map[string]*models.Order
}

func (f *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, order)
	return nil
}

func (f *fakeOrderStore) Get(_ context.Context, id string) (*models.Order, error) {
	if o, ok := f.orders[id]; ok {
		return o, nil
	}
	return nil, errs.ErrNotFound
}

func (f *fakeOrderStore) ListByUser(context.Context, string) ([]models.Order, error) {
	return nil, nil
}
func (f *fakeOrderStore) ListAll(context.Context) ([]models.Order, error) { return nil, nil }
func (f *fakeOrderStore) UpdateStatus(context.Context, string, models.OrderStatus) error {
	return nil
}

type recordingPublisher struct {
	published []*models.Order
	err       error
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, order *models.Order) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, order)
	return nil
}

func newService(inv *fakeInventory, res *fakeReserver, store *fakeOrderStore, pub *recordingPublisher) *Service {
	if inv == nil {
		inv = &fakeInventory{products: map[string]models.Product{}}
	}
	if res == nil {
		res = &fakeReserver{}
	}
	if store == nil {
		store = &fakeOrderStore{}
	}
	if pub == nil {
		pub = &recordingPublisher{}
	}
	return NewService(inv, res, store, pub)
}

func TestCreateSuccess(t *testing.T) {
	inv := &fakeInventory{products: map[string]models.Product{
		"1": {ID: "1", Name: "Apples", Quantity: 10},
		"2": {ID: "2", Name: "Pears", Quantity: 4},
	}}
	res := &fakeReserver{}
	store := &fakeOrderStore{}
	pub := &recordingPublisher{}
	svc := newService(inv, res, store, pub)

	lines := []models.CartLine{
		{ProductID: "1", Quantity: 2},
		{ProductID: "2", Quantity: 1},
	}
	order, err := svc.Create(context.Background(), "user-1", lines, decimal.NewFromFloat(7.50))
	require.NoError(t, err)

	assert.Equal(t, "user-1", order.UserRef)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	// Total is persisted as claimed, not recomputed
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(7.50)))
	// Items are a snapshot of the cart lines
	assert.Equal(t, []models.OrderItem{
		{ProductID: "1", Quantity: 2},
		{ProductID: "2", Quantity: 1},
	}, order.Items)

	assert.Equal(t, []reserveCall{{"1", 2}, {"2", 1}}, res.reserves)
	assert.Len(t, store.created, 1)
	assert.Len(t, pub.published, 1)
}

func TestCreateRejectsEmptyCart(t *testing.T) {
	svc := newService(nil, nil, nil, nil)

	var validation *errs.ValidationError
	_, err := svc.Create(context.Background(), "user-1", nil, decimal.NewFromInt(10))
	assert.ErrorAs(t, err, &validation)
}

func TestCreateRejectsNonPositiveTotal(t *testing.T) {
	svc := newService(nil, nil, nil, nil)
	lines := []models.CartLine{{ProductID: "1", Quantity: 1}}

	var validation *errs.ValidationError
	_, err := svc.Create(context.Background(), "user-1", lines, decimal.Zero)
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Create(context.Background(), "user-1", lines, decimal.NewFromInt(-5))
	assert.ErrorAs(t, err, &validation)
}

func TestCreateRequiresPurchaser(t *testing.T) {
	svc := newService(nil, nil, nil, nil)
	lines := []models.CartLine{{ProductID: "1", Quantity: 1}}

	_, err := svc.Create(context.Background(), "", lines, decimal.NewFromInt(5))
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestCreateAbortsBeforeAnyDecrement(t *testing.T) {
	// Line 2 of 3 is understocked: nothing is reserved, no order created.
	inv := &fakeInventory{products: map[string]models.Product{
		"1": {ID: "1", Name: "Apples", Quantity: 10},
		"2": {ID: "2", Name: "Pears", Quantity: 1},
		"3": {ID: "3", Name: "Plums", Quantity: 10},
	}}
	res := &fakeReserver{}
	store := &fakeOrderStore{}
	svc := newService(inv, res, store, nil)

	lines := []models.CartLine{
		{ProductID: "1", Quantity: 2},
		{ProductID: "2", Quantity: 5},
		{ProductID: "3", Quantity: 1},
	}
	_, err := svc.Create(context.Background(), "user-1", lines, decimal.NewFromInt(20))

	assert.ErrorIs(t, err, errs.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Pears")
	assert.Empty(t, res.reserves)
	assert.Empty(t, store.created)
}

func TestCreateNamesOutOfStockProduct(t *testing.T) {
	// Checkout [{1,2},{2,1}] where product 2 has zero stock: fails naming
	// product 2, product 1 untouched.
	inv := &fakeInventory{products: map[string]models.Product{
		"1": {ID: "1", Name: "Apples", Quantity: 10},
		"2": {ID: "2", Name: "Pears", Quantity: 0},
	}}
	res := &fakeReserver{}
	svc := newService(inv, res, nil, nil)

	lines := []models.CartLine{
		{ProductID: "1", Quantity: 2},
		{ProductID: "2", Quantity: 1},
	}
	_, err := svc.Create(context.Background(), "user-1", lines, decimal.NewFromInt(10))

	assert.ErrorIs(t, err, errs.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Pears")
	assert.Empty(t, res.reserves)
}

func TestCreateUnknownProduct(t *testing.T) {
	inv := &fakeInventory{products: map[string]models.Product{
		"1": {ID: "1", Name: "Apples", Quantity: 10},
	}}
	svc := newService(inv, nil, nil, nil)

	lines := []models.CartLine{
		{ProductID: "1", Quantity: 1},
		{ProductID: "ghost", Quantity: 1},
	}
	_, err := svc.Create(context.Background(), "user-1", lines, decimal.NewFromInt(10))

	var validation *errs.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Msg, "ghost")
}

func TestCreateReleasesOnMidReservationFailure(t *testing.T) {
	// The conditional write for line 2 loses a race after line 1 already
	// reserved: line 1 is released and no order is created.
	inv := &fakeInventory{products: map[string]models.Product{
		"1": {ID: "1", Name: "Apples", Quantity: 10},
		"2": {ID: "2", Name: "Pears", Quantity: 5},
	}}
	res := &fakeReserver{failOn: "2", failWith: errs.ErrUpdateFailed}
	store := &fakeOrderStore{}
	svc := newService(inv, res, store, nil)

	lines := []models.CartLine{
		{ProductID: "1", Quantity: 2},
		{ProductID: "2", Quantity: 3},
	}
	_, err := svc.Create(context.Background(), "user-1", lines, decimal.NewFromInt(12))

	assert.ErrorIs(t, err, errs.ErrUpdateFailed)
	assert.Equal(t, []reserveCall{{"1", 2}}, res.reserves)
	assert.Equal(t, []reserveCall{{"1", 2}}, res.releases)
	assert.Empty(t, store.created)
}

func TestCreateReleasesWhenInsertFails(t *testing.T) {
	inv := &fakeInventory{products: map[string]models.Product{
		"1": {ID: "1", Name: "Apples", Quantity: 10},
	}}
	res := &fakeReserver{}
	store := &fakeOrderStore{createErr: errors.New("db down")}
	svc := newService(inv, res, store, nil)

	lines := []models.CartLine{{ProductID: "1", Quantity: 2}}
	_, err := svc.Create(context.Background(), "user-1", lines, decimal.NewFromInt(4))

	require.Error(t, err)
	assert.Equal(t, []reserveCall{{"1", 2}}, res.releases)
}

func TestCreatePublishFailureDoesNotFailOrder(t *testing.T) {
	inv := &fakeInventory{products: map[string]models.Product{
		"1": {ID: "1", Name: "Apples", Quantity: 10},
	}}
	pub := &recordingPublisher{err: errors.New("broker gone")}
	svc := newService(inv, nil, nil, pub)

	lines := []models.CartLine{{ProductID: "1", Quantity: 1}}
	order, err := svc.Create(context.Background(), "user-1", lines, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.NotNil(t, order)
}

func TestGetForUserRefusesOtherShoppers(t *testing.T) {
	store := &fakeOrderStore{orders: map[string]*models.Order{
		"o1": {ID: "o1", UserRef: "alice"},
	}}
	svc := newService(nil, nil, store, nil)

	order, err := svc.GetForUser(context.Background(), "alice", "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)

	_, err = svc.GetForUser(context.Background(), "mallory", "o1")
	assert.ErrorIs(t, err, errs.ErrForbidden)

	_, err = svc.GetForUser(context.Background(), "alice", "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
