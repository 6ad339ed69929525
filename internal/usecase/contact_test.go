package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/ContactBook/internal/database/memory"
	"github.com/GoArmGo/ContactBook/internal/domain"
	"github.com/GoArmGo/ContactBook/internal/validation"
)

type contactFixture struct {
	contacts  *memory.ContactStorage
	addresses *memory.AddressStorage
	uc        ContactUseCase
	owner     *domain.User
	stranger  *domain.User
}

func newContactFixture(t *testing.T) *contactFixture {
	t.Helper()

	addresses := memory.NewAddressStorage()
	contacts := memory.NewContactStorage(addresses)
	logger := testLogger()
	pipeline := validation.NewPipeline()
	ownership := NewOwnershipResolver(contacts, addresses, logger)

	return &contactFixture{
		contacts:  contacts,
		addresses: addresses,
		uc:        NewContactUseCase(contacts, ownership, pipeline, logger),
		owner:     &domain.User{ID: 1, Username: "owner"},
		stranger:  &domain.User{ID: 2, Username: "stranger"},
	}
}

func (f *contactFixture) createContact(t *testing.T, request domain.CreateContactRequest) *domain.ContactResponse {
	t.Helper()
	result, err := f.uc.Create(context.Background(), f.owner, request)
	require.NoError(t, err)
	return result
}

func TestContactCreate(t *testing.T) {
	f := newContactFixture(t)

	result := f.createContact(t, domain.CreateContactRequest{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Phone:     "+123456",
	})

	assert.NotZero(t, result.ID)
	assert.Equal(t, "John", result.FirstName)

	stored, err := f.contacts.GetContactByIDAndOwner(context.Background(), result.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, stored.UserID, "owner comes from the authenticated principal")
}

func TestContactCreate_Validation(t *testing.T) {
	f := newContactFixture(t)

	_, err := f.uc.Create(context.Background(), f.owner, domain.CreateContactRequest{
		Email: "not-an-email",
	})
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Violations, "first_name: is required")
	assert.Contains(t, validationErr.Violations, "email: must be a valid email")
}

func TestContactGet_ForeignContactLooksAbsent(t *testing.T) {
	f := newContactFixture(t)
	ctx := context.Background()
	created := f.createContact(t, domain.CreateContactRequest{FirstName: "John"})

	_, err := f.uc.Get(ctx, f.stranger, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, absentErr := f.uc.Get(ctx, f.owner, created.ID+1000)
	require.ErrorIs(t, absentErr, domain.ErrNotFound)
	assert.Equal(t, absentErr.Error(), err.Error(),
		"foreign and absent contacts must be indistinguishable")
}

func TestContactUpdate(t *testing.T) {
	f := newContactFixture(t)
	ctx := context.Background()
	created := f.createContact(t, domain.CreateContactRequest{FirstName: "John", Email: "john@example.com"})

	result, err := f.uc.Update(ctx, f.owner, created.ID, domain.UpdateContactRequest{
		FirstName: "Johnny",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.Equal(t, "Johnny", result.FirstName)
	assert.Empty(t, result.Email, "update replaces all mutable fields")

	_, err = f.uc.Update(ctx, f.stranger, created.ID, domain.UpdateContactRequest{FirstName: "Hijack"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactRemove_ReturnsSnapshot(t *testing.T) {
	f := newContactFixture(t)
	ctx := context.Background()
	created := f.createContact(t, domain.CreateContactRequest{FirstName: "John", Phone: "+1"})

	snapshot, err := f.uc.Remove(ctx, f.owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, snapshot.ID)
	assert.Equal(t, "John", snapshot.FirstName)

	_, err = f.uc.Get(ctx, f.owner, created.ID)
	require.ErrorIs(t, err, domain.ErrNotFound, "deleted contact must be gone")
}

func TestContactSearch_Defaults(t *testing.T) {
	f := newContactFixture(t)
	for i := 0; i < 15; i++ {
		f.createContact(t, domain.CreateContactRequest{FirstName: fmt.Sprintf("Contact%02d", i)})
	}

	results, paging, err := f.uc.Search(context.Background(), f.owner, domain.SearchContactRequest{})
	require.NoError(t, err)

	assert.Len(t, results, 10, "default page size is 10")
	assert.Equal(t, 1, paging.CurrentPage)
	assert.Equal(t, 10, paging.Size)
	assert.Equal(t, 2, paging.TotalPage)
}

func TestContactSearch_TotalPageIsCeiling(t *testing.T) {
	f := newContactFixture(t)
	for i := 0; i < 7; i++ {
		f.createContact(t, domain.CreateContactRequest{FirstName: fmt.Sprintf("Contact%d", i)})
	}

	results, paging, err := f.uc.Search(context.Background(), f.owner, domain.SearchContactRequest{Page: 3, Size: 3})
	require.NoError(t, err)

	assert.Len(t, results, 1, "last page carries the remainder")
	assert.Equal(t, 3, paging.TotalPage)
}

func TestContactSearch_BeyondLastPage(t *testing.T) {
	f := newContactFixture(t)
	for i := 0; i < 5; i++ {
		f.createContact(t, domain.CreateContactRequest{FirstName: fmt.Sprintf("Contact%d", i)})
	}

	results, paging, err := f.uc.Search(context.Background(), f.owner, domain.SearchContactRequest{Page: 9, Size: 10})
	require.NoError(t, err)

	assert.Empty(t, results)
	assert.Equal(t, 9, paging.CurrentPage)
	assert.Equal(t, 1, paging.TotalPage, "total_page reflects the real total, not the requested page")
}

func TestContactSearch_NameMatchesFirstOrLastName(t *testing.T) {
	f := newContactFixture(t)
	f.createContact(t, domain.CreateContactRequest{FirstName: "Anna", LastName: "Smith"})
	f.createContact(t, domain.CreateContactRequest{FirstName: "Bob", LastName: "Annafield"})
	f.createContact(t, domain.CreateContactRequest{FirstName: "Carol", LastName: "Jones"})

	results, _, err := f.uc.Search(context.Background(), f.owner, domain.SearchContactRequest{Name: "anna"})
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestContactSearch_FiltersCombineWithAND(t *testing.T) {
	f := newContactFixture(t)
	f.createContact(t, domain.CreateContactRequest{FirstName: "John", Email: "john@work.com", Phone: "+111"})
	f.createContact(t, domain.CreateContactRequest{FirstName: "John", Email: "john@home.org", Phone: "+222"})
	f.createContact(t, domain.CreateContactRequest{FirstName: "Jane", Email: "jane@work.com", Phone: "+111"})

	results, _, err := f.uc.Search(context.Background(), f.owner, domain.SearchContactRequest{
		Name:  "john",
		Email: "work",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "john@work.com", results[0].Email)
}

func TestContactSearch_ScopedToOwner(t *testing.T) {
	f := newContactFixture(t)
	ctx := context.Background()
	f.createContact(t, domain.CreateContactRequest{FirstName: "Mine"})

	foreign := &domain.Contact{UserID: f.stranger.ID, FirstName: "Theirs"}
	require.NoError(t, f.contacts.SaveContact(ctx, foreign))

	results, paging, err := f.uc.Search(ctx, f.owner, domain.SearchContactRequest{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Mine", results[0].FirstName)
	assert.Equal(t, 1, paging.TotalPage)
}

func TestContactSearch_SizeValidation(t *testing.T) {
	f := newContactFixture(t)

	_, _, err := f.uc.Search(context.Background(), f.owner, domain.SearchContactRequest{Size: 500})
	require.Error(t, err)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Violations, "size: must be at most 100")
}
