package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/ContactBook/internal/database/memory"
	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/GoArmGo/ContactBook/internal/validation"
)

type addressFixture struct {
	contacts  *memory.ContactStorage
	addresses *memory.AddressStorage
	contactUC ContactUseCase
	addressUC AddressUseCase
	owner     *domain.User
	stranger  *domain.User
	contactID int64
}

func newAddressFixture(t *testing.T) *addressFixture {
	t.Helper()

	addresses := memory.NewAddressStorage()
	contacts := memory.NewContactStorage(addresses)
	logger := testLogger()
	pipeline := validation.NewPipeline()
	ownership := NewOwnershipResolver(contacts, addresses, logger)

	f := &addressFixture{
		contacts:  contacts,
		addresses: addresses,
		contactUC: NewContactUseCase(contacts, ownership, pipeline, logger),
		addressUC: NewAddressUseCase(addresses, ownership, pipeline, logger),
		owner:     &domain.User{ID: 1, Username: "owner"},
		stranger:  &domain.User{ID: 2, Username: "stranger"},
	}

	contact, err := f.contactUC.Create(context.Background(), f.owner, domain.CreateContactRequest{FirstName: "John"})
	require.NoError(t, err)
	f.contactID = contact.ID
	return f
}

func validAddressRequest() domain.CreateAddressRequest {
	return domain.CreateAddressRequest{
		Street:     "Jalan Mawar 1",
		City:       "Jakarta",
		Province:   "DKI Jakarta",
		Country:    "Indonesia",
		PostalCode: "12345",
	}
}

func (f *addressFixture) createAddress(t *testing.T) *domain.AddressResponse {
	t.Helper()
	result, err := f.addressUC.Create(context.Background(), f.owner, f.contactID, validAddressRequest())
	require.NoError(t, err)
	return result
}

func TestAddressCreate(t *testing.T) {
	f := newAddressFixture(t)

	result := f.createAddress(t)
	assert.NotZero(t, result.ID)
	assert.Equal(t, "Indonesia", result.Country)
}

func TestAddressCreate_Validation(t *testing.T) {
	f := newAddressFixture(t)

	_, err := f.addressUC.Create(context.Background(), f.owner, f.contactID, domain.CreateAddressRequest{
		Street: "Jalan Mawar 1",
	})
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Violations, "country: is required")
	assert.Contains(t, validationErr.Violations, "postal_code: is required")
}

func TestAddressCreate_ForeignContact(t *testing.T) {
	f := newAddressFixture(t)

	_, err := f.addressUC.Create(context.Background(), f.stranger, f.contactID, validAddressRequest())
	require.ErrorIs(t, err, domain.ErrNotFound, "contact is resolved before the address is touched")
}

func TestAddressGet_OwnershipChain(t *testing.T) {
	f := newAddressFixture(t)
	ctx := context.Background()
	created := f.createAddress(t)

	result, err := f.addressUC.Get(ctx, f.owner, f.contactID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, result.ID)

	// тот же адрес через чужого пользователя невидим
	_, err = f.addressUC.Get(ctx, f.stranger, f.contactID, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// и через другой контакт того же владельца тоже
	other, err := f.contactUC.Create(ctx, f.owner, domain.CreateContactRequest{FirstName: "Jane"})
	require.NoError(t, err)
	_, err = f.addressUC.Get(ctx, f.owner, other.ID, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound, "address is never looked up by its ID alone")
}

func TestAddressUpdate(t *testing.T) {
	f := newAddressFixture(t)
	ctx := context.Background()
	created := f.createAddress(t)

	request := domain.UpdateAddressRequest{
		Country:    "Singapore",
		PostalCode: "654321",
	}
	result, err := f.addressUC.Update(ctx, f.owner, f.contactID, created.ID, request)
	require.NoError(t, err)
	assert.Equal(t, "Singapore", result.Country)
	assert.Empty(t, result.Street, "update replaces all mutable fields")
}

func TestAddressRemove_ReturnsSnapshot(t *testing.T) {
	f := newAddressFixture(t)
	ctx := context.Background()
	created := f.createAddress(t)

	snapshot, err := f.addressUC.Remove(ctx, f.owner, f.contactID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, snapshot.ID)
	assert.Equal(t, "Indonesia", snapshot.Country)

	_, err = f.addressUC.Get(ctx, f.owner, f.contactID, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddressList(t *testing.T) {
	f := newAddressFixture(t)
	ctx := context.Background()

	results, err := f.addressUC.List(ctx, f.owner, f.contactID)
	require.NoError(t, err)
	assert.Empty(t, results, "contact without addresses lists empty, not an error")

	f.createAddress(t)
	f.createAddress(t)

	results, err = f.addressUC.List(ctx, f.owner, f.contactID)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	_, err = f.addressUC.List(ctx, f.stranger, f.contactID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddressesGoneWithContact(t *testing.T) {
	f := newAddressFixture(t)
	ctx := context.Background()
	created := f.createAddress(t)

	_, err := f.contactUC.Remove(ctx, f.owner, f.contactID)
	require.NoError(t, err)

	_, err = f.addresses.GetAddressByIDAndContact(ctx, created.ID, f.contactID)
	require.ErrorIs(t, err, domain.ErrNotFound, "contact deletion cascades to its addresses")
}
