package service_test

import (
	"context"
	"testing"

	"github.com/Banchi-salim/PhoneStoreInventory/internal/dto"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/model"
	"github.com/Banchi-salim/PhoneStoreInventory/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogFixture() (service.CatalogService, *stubCategoryRepo, *stubUserRepo) {
	categoryRepo := newStubCategoryRepo()
	brandRepo := newStubBrandRepo()
	branchRepo := newStubBranchRepo()
	userRepo := newStubUserRepo()
	return service.NewCatalogService(categoryRepo, brandRepo, branchRepo, userRepo), categoryRepo, userRepo
}

func TestCreateCategory_ParentMustExist(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	missing := uuid.New().String()
	_, err := svc.CreateCategory(context.Background(), dto.CategoryRequest{
		Name:     "Flagships",
		ParentID: &missing,
	})
	assert.ErrorContains(t, err, "parent category not found")
}

func TestUpdateCategory_SelfParentRejected(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	created, err := svc.CreateCategory(context.Background(), dto.CategoryRequest{Name: "Phones"})
	require.NoError(t, err)

	_, err = svc.UpdateCategory(context.Background(), uuid.MustParse(created.ID), dto.CategoryRequest{
		Name:     "Phones",
		ParentID: &created.ID,
	})
	assert.ErrorContains(t, err, "its own parent")
}

func TestUpdateCategory_CycleRejected(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	// root → mid → leaf, then try to reparent root under leaf
	root, err := svc.CreateCategory(context.Background(), dto.CategoryRequest{Name: "Accessories"})
	require.NoError(t, err)
	mid, err := svc.CreateCategory(context.Background(), dto.CategoryRequest{Name: "Audio", ParentID: &root.ID})
	require.NoError(t, err)
	leaf, err := svc.CreateCategory(context.Background(), dto.CategoryRequest{Name: "Earbuds", ParentID: &mid.ID})
	require.NoError(t, err)

	_, err = svc.UpdateCategory(context.Background(), uuid.MustParse(root.ID), dto.CategoryRequest{
		Name:     "Accessories",
		ParentID: &leaf.ID,
	})
	assert.ErrorContains(t, err, "cycle")
}

func TestDeleteCategory_ChildrenReparentedToRoot(t *testing.T) {
	svc, categoryRepo, _ := newCatalogFixture()

	parent, err := svc.CreateCategory(context.Background(), dto.CategoryRequest{Name: "Wearables"})
	require.NoError(t, err)
	child, err := svc.CreateCategory(context.Background(), dto.CategoryRequest{Name: "Smartwatches", ParentID: &parent.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(context.Background(), uuid.MustParse(parent.ID)))

	stored, err := categoryRepo.FindByID(context.Background(), uuid.MustParse(child.ID))
	require.NoError(t, err)
	assert.Nil(t, stored.ParentID)
}

func TestCreateBranch_ManagerMustExist(t *testing.T) {
	svc, _, userRepo := newCatalogFixture()

	missing := uuid.New().String()
	_, err := svc.CreateBranch(context.Background(), dto.BranchRequest{
		Name:        "Downtown",
		Address:     "5 High Street",
		PhoneNumber: "0722222222",
		ManagerID:   &missing,
	})
	assert.ErrorContains(t, err, "manager not found")

	manager := &model.User{Username: "branch.manager", Role: "staff", Active: true}
	require.NoError(t, userRepo.Create(context.Background(), manager))
	managerID := manager.ID.String()

	resp, err := svc.CreateBranch(context.Background(), dto.BranchRequest{
		Name:        "Downtown",
		Address:     "5 High Street",
		PhoneNumber: "0722222222",
		ManagerID:   &managerID,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.ManagerID)
	assert.Equal(t, managerID, *resp.ManagerID)
}
