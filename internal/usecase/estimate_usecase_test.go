package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"estimate_service/internal/domain/calculation"
	"estimate_service/internal/domain/entities"
	"estimate_service/internal/domain/formula"
	"estimate_service/internal/usecase/interfaces"
	mock_interfaces "estimate_service/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	fixedNow  = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	principal = entities.Principal{ID: 7, Name: "Kim"}
)

func newTestUseCase(repo interfaces.IEstimateRepository, catalog interfaces.ICatalogRepository) *EstimateUseCase {
	uc := NewEstimateUseCase(repo, catalog)
	uc.now = func() time.Time { return fixedNow }
	seq := 0
	uc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	uc.noPrefix = "EST"
	return uc
}

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func sampleSections() []entities.Section {
	return []entities.Section{
		{
			SectionOrder: 2,
			SectionType:  entities.SectionTypeProfit,
			Title:        "Profit",
			Lines: []entities.Line{
				{LineOrder: 1, Name: "margin", Qty: 10, CalcMode: entities.CalcModePercentOfSubtotal, BaseSectionType: entities.SectionTypeMaterial},
			},
		},
		{
			SectionOrder: 1,
			SectionType:  entities.SectionTypeMaterial,
			Title:        "Materials",
			Lines: []entities.Line{
				{LineOrder: 1, Name: "cement", Qty: 10, UnitPrice: f64(1000), CalcMode: entities.CalcModeNormal},
			},
		},
	}
}

func TestEstimateUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated", func(t *testing.T) {
		uc := newTestUseCase(nil, nil)
		_, err := uc.Create(ctx, entities.Principal{}, CreateEstimateCommand{ProjectID: 1})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("invalid project id", func(t *testing.T) {
		uc := newTestUseCase(nil, nil)
		_, err := uc.Create(ctx, principal, CreateEstimateCommand{ProjectID: 0})
		if !errors.Is(err, ErrInvalidProjectID) {
			t.Fatalf("expected ErrInvalidProjectID, got %v", err)
		}
	})

	t.Run("duplicate rejected before any write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		catalog := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := newTestUseCase(repo, catalog)

		repo.EXPECT().ExistsForProject(gomock.Any(), int64(3)).Return(true, nil)

		_, err := uc.Create(ctx, principal, CreateEstimateCommand{ProjectID: 3})
		if !errors.Is(err, ErrDuplicateEstimate) {
			t.Fatalf("expected ErrDuplicateEstimate, got %v", err)
		}
	})

	t.Run("project not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		catalog := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := newTestUseCase(repo, catalog)

		repo.EXPECT().ExistsForProject(gomock.Any(), int64(3)).Return(false, nil)
		catalog.EXPECT().GetProject(gomock.Any(), int64(3)).Return(entities.Project{}, nil)

		_, err := uc.Create(ctx, principal, CreateEstimateCommand{ProjectID: 3})
		if !errors.Is(err, ErrProjectNotFound) {
			t.Fatalf("expected ErrProjectNotFound, got %v", err)
		}
	})

	t.Run("too many sections", func(t *testing.T) {
		uc := newTestUseCase(nil, nil)
		sections := make([]entities.Section, interfaces.MaxSectionsPerRevision+1)
		_, err := uc.Create(ctx, principal, CreateEstimateCommand{ProjectID: 3, Sections: sections})
		if !errors.Is(err, ErrRevisionTooLarge) {
			t.Fatalf("expected ErrRevisionTooLarge, got %v", err)
		}
	})

	t.Run("invalid formula writes nothing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		catalog := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := newTestUseCase(repo, catalog)

		repo.EXPECT().ExistsForProject(gomock.Any(), int64(3)).Return(false, nil)
		catalog.EXPECT().GetProject(gomock.Any(), int64(3)).Return(entities.Project{ID: 3, Name: "Tower"}, nil)

		sections := []entities.Section{{
			SectionOrder: 1,
			SectionType:  entities.SectionTypeOverhead,
			Lines:        []entities.Line{{LineOrder: 1, CalcMode: entities.CalcModeFormula, Formula: "max(MATERIAL, 1)"}},
		}}
		_, err := uc.Create(ctx, principal, CreateEstimateCommand{ProjectID: 3, Sections: sections})
		if !errors.Is(err, formula.ErrInvalidFormula) {
			t.Fatalf("expected ErrInvalidFormula, got %v", err)
		}
	})

	t.Run("success computes totals and defaults", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		catalog := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := newTestUseCase(repo, catalog)

		repo.EXPECT().ExistsForProject(gomock.Any(), int64(3)).Return(false, nil)
		catalog.EXPECT().GetProject(gomock.Any(), int64(3)).Return(entities.Project{ID: 3, Name: "Tower", ClientID: 11, ClientName: "ACME"}, nil)
		repo.EXPECT().NextEstimateID(gomock.Any()).Return(int64(42), nil)
		repo.EXPECT().CreateWithRevision(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e entities.Estimate, rev entities.Revision, sections []entities.Section) error {
				assert.Equal(t, int64(42), e.ID)
				assert.Equal(t, "EST-2026-000042", e.EstimateNo)
				assert.Equal(t, "Tower", e.Title)
				assert.Equal(t, "ACME", e.ReceiverName)
				assert.Equal(t, int64(11), e.ClientID)
				assert.Equal(t, entities.BusinessStateOngoing, e.BusinessState)
				assert.Equal(t, rev.ID, e.CurrentRevisionID)

				assert.Equal(t, 1, rev.RevisionNo)
				assert.Equal(t, entities.RevisionStatusDraft, rev.Status)
				assert.Equal(t, int64(42), rev.EstimateID)
				assert.Equal(t, "Kim", rev.AuthorName)
				assert.InDelta(t, 11000, rev.Subtotal, 1e-9)
				assert.InDelta(t, 1100, rev.Tax, 1e-9)
				assert.InDelta(t, 12100, rev.Total, 1e-9)

				require.Len(t, sections, 2)
				assert.Equal(t, entities.SectionTypeMaterial, sections[0].SectionType)
				assert.Equal(t, rev.ID, sections[0].RevisionID)
				assert.NotEmpty(t, sections[0].ID)
				assert.InDelta(t, 10000, sections[0].Subtotal, 1e-9)
				assert.InDelta(t, 1000, sections[1].Lines[0].Amount, 1e-9)
				assert.Equal(t, "EA", sections[0].Lines[0].Unit)
				assert.Equal(t, entities.SourceTypeNone, sections[0].Lines[0].SourceType)
				assert.Equal(t, entities.PriceTypeManual, sections[0].Lines[0].PriceType)
				return nil
			})

		res, err := uc.Create(ctx, principal, CreateEstimateCommand{ProjectID: 3, Sections: sampleSections()})
		require.NoError(t, err)
		assert.Equal(t, int64(42), res.ID)
		assert.Equal(t, "EST-2026-000042", res.EstimateNo)
		assert.NotEmpty(t, res.RevisionID)
	})

	t.Run("empty sections persist one manual section", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		catalog := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := newTestUseCase(repo, catalog)

		repo.EXPECT().ExistsForProject(gomock.Any(), int64(3)).Return(false, nil)
		catalog.EXPECT().GetProject(gomock.Any(), int64(3)).Return(entities.Project{ID: 3}, nil)
		repo.EXPECT().NextEstimateID(gomock.Any()).Return(int64(1), nil)
		repo.EXPECT().CreateWithRevision(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e entities.Estimate, rev entities.Revision, sections []entities.Section) error {
				assert.Equal(t, "Estimate", e.Title)
				require.Len(t, sections, 1)
				assert.Equal(t, entities.SectionTypeManual, sections[0].SectionType)
				assert.Empty(t, sections[0].Lines)
				assert.Zero(t, rev.Subtotal)
				assert.Zero(t, rev.Tax)
				assert.Zero(t, rev.Total)
				return nil
			})

		_, err := uc.Create(ctx, principal, CreateEstimateCommand{ProjectID: 3, Title: "  "})
		require.NoError(t, err)
	})

	t.Run("missing products are downgraded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		catalog := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := newTestUseCase(repo, catalog)

		sections := []entities.Section{{
			SectionOrder: 1,
			SectionType:  entities.SectionTypeMaterial,
			Lines: []entities.Line{
				{LineOrder: 1, Qty: 2, UnitPrice: f64(50), CalcMode: entities.CalcModeNormal, SourceType: entities.SourceTypeProduct, SourceID: i64(5), PriceType: entities.PriceTypeDesign},
				{LineOrder: 2, Qty: 1, UnitPrice: f64(30), CalcMode: entities.CalcModeNormal, SourceType: entities.SourceTypeProduct, SourceID: i64(9)},
				{LineOrder: 3, Qty: 1, UnitPrice: f64(20), CalcMode: entities.CalcModeNormal, SourceType: entities.SourceTypeProduct, SourceID: i64(5)},
				{LineOrder: 4, Qty: 1, UnitPrice: f64(10), CalcMode: entities.CalcModeNormal, SourceType: entities.SourceTypeLaborItem, SourceID: i64(77)},
			},
		}}

		repo.EXPECT().ExistsForProject(gomock.Any(), int64(3)).Return(false, nil)
		catalog.EXPECT().GetProject(gomock.Any(), int64(3)).Return(entities.Project{ID: 3}, nil)
		catalog.EXPECT().ExistingProductIDs(gomock.Any(), []int64{5, 9}).Return(map[int64]struct{}{5: {}}, nil)
		repo.EXPECT().NextEstimateID(gomock.Any()).Return(int64(1), nil)
		repo.EXPECT().CreateWithRevision(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ entities.Estimate, rev entities.Revision, sections []entities.Section) error {
				lines := sections[0].Lines
				assert.Equal(t, entities.SourceTypeProduct, lines[0].SourceType)
				assert.Equal(t, entities.PriceTypeDesign, lines[0].PriceType)
				assert.Equal(t, entities.SourceTypeNone, lines[1].SourceType)
				assert.Nil(t, lines[1].SourceID)
				assert.InDelta(t, 30, lines[1].Amount, 1e-9)
				assert.Equal(t, entities.SourceTypeProduct, lines[2].SourceType)
				assert.Equal(t, entities.SourceTypeLaborItem, lines[3].SourceType)
				assert.InDelta(t, 160, rev.Subtotal, 1e-9)
				return nil
			})

		_, err := uc.Create(ctx, principal, CreateEstimateCommand{ProjectID: 3, Sections: sections})
		require.NoError(t, err)
	})

	t.Run("catalog failure is not swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		catalog := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := newTestUseCase(repo, catalog)

		sections := []entities.Section{{
			SectionOrder: 1,
			SectionType:  entities.SectionTypeMaterial,
			Lines:        []entities.Line{{LineOrder: 1, SourceType: entities.SourceTypeProduct, SourceID: i64(5)}},
		}}
		repo.EXPECT().ExistsForProject(gomock.Any(), int64(3)).Return(false, nil)
		catalog.EXPECT().GetProject(gomock.Any(), int64(3)).Return(entities.Project{ID: 3}, nil)
		catalog.EXPECT().ExistingProductIDs(gomock.Any(), gomock.Any()).Return(nil, errors.New("throttled"))

		_, err := uc.Create(ctx, principal, CreateEstimateCommand{ProjectID: 3, Sections: sections})
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("project claimed concurrently", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		catalog := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := newTestUseCase(repo, catalog)

		repo.EXPECT().ExistsForProject(gomock.Any(), int64(3)).Return(false, nil)
		catalog.EXPECT().GetProject(gomock.Any(), int64(3)).Return(entities.Project{ID: 3}, nil)
		repo.EXPECT().NextEstimateID(gomock.Any()).Return(int64(8), nil)
		repo.EXPECT().CreateWithRevision(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.ErrProjectTaken)

		_, err := uc.Create(ctx, principal, CreateEstimateCommand{ProjectID: 3})
		if !errors.Is(err, ErrDuplicateEstimate) {
			t.Fatalf("expected ErrDuplicateEstimate, got %v", err)
		}
	})
}

func TestEstimateUseCase_Revise(t *testing.T) {
	ctx := context.Background()
	current := entities.Estimate{ID: 42, ProjectID: 3, CurrentRevisionID: "rev-2", BusinessState: entities.BusinessStateOngoing}

	t.Run("unauthenticated", func(t *testing.T) {
		uc := newTestUseCase(nil, nil)
		_, err := uc.Revise(ctx, entities.Principal{}, 42, ReviseEstimateCommand{})
		if !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("estimate not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), int64(42)).Return(entities.Estimate{}, nil)

		_, err := uc.Revise(ctx, principal, 42, ReviseEstimateCommand{})
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})

	t.Run("soft deleted is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestUseCase(repo, nil)

		deleted := current
		deleted.DeletedAt = &fixedNow
		repo.EXPECT().GetByID(gomock.Any(), int64(42)).Return(deleted, nil)

		_, err := uc.Revise(ctx, principal, 42, ReviseEstimateCommand{})
		if !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})

	t.Run("empty current pointer is corrupt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestUseCase(repo, nil)

		broken := current
		broken.CurrentRevisionID = ""
		repo.EXPECT().GetByID(gomock.Any(), int64(42)).Return(broken, nil)

		_, err := uc.Revise(ctx, principal, 42, ReviseEstimateCommand{})
		if !errors.Is(err, ErrCorruptState) {
			t.Fatalf("expected ErrCorruptState, got %v", err)
		}
	})

	t.Run("dangling current pointer is corrupt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), int64(42)).Return(current, nil)
		repo.EXPECT().GetRevision(gomock.Any(), "rev-2").Return(entities.Revision{}, nil)

		_, err := uc.Revise(ctx, principal, 42, ReviseEstimateCommand{})
		if !errors.Is(err, ErrCorruptState) {
			t.Fatalf("expected ErrCorruptState, got %v", err)
		}
	})

	t.Run("success appends next revision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		catalog := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := newTestUseCase(repo, catalog)

		title := "  Tower B  "
		repo.EXPECT().GetByID(gomock.Any(), int64(42)).Return(current, nil)
		repo.EXPECT().GetRevision(gomock.Any(), "rev-2").Return(entities.Revision{ID: "rev-2", EstimateID: 42, RevisionNo: 2}, nil)
		repo.EXPECT().AppendRevision(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, change interfaces.RevisionAppend) error {
				assert.Equal(t, int64(42), change.EstimateID)
				assert.Equal(t, "rev-2", change.PreviousRevisionID)
				assert.Equal(t, 3, change.Revision.RevisionNo)
				assert.Equal(t, "client asked", change.Revision.Reason)
				assert.Equal(t, entities.RevisionStatusDraft, change.Revision.Status)
				assert.InDelta(t, 12100, change.Revision.Total, 1e-9)
				require.NotNil(t, change.Header.Title)
				assert.Equal(t, "Tower B", *change.Header.Title)
				assert.Nil(t, change.Header.Memo)
				assert.Equal(t, fixedNow, change.UpdatedAt)
				for _, sec := range change.Sections {
					assert.Equal(t, change.Revision.ID, sec.RevisionID)
				}
				return nil
			})

		rev, err := uc.Revise(ctx, principal, 42, ReviseEstimateCommand{Title: &title, Reason: " client asked ", Sections: sampleSections()})
		require.NoError(t, err)
		assert.Equal(t, 3, rev.RevisionNo)
	})

	t.Run("concurrent revision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		catalog := mock_interfaces.NewMockICatalogRepository(ctrl)
		uc := newTestUseCase(repo, catalog)

		repo.EXPECT().GetByID(gomock.Any(), int64(42)).Return(current, nil)
		repo.EXPECT().GetRevision(gomock.Any(), "rev-2").Return(entities.Revision{ID: "rev-2", EstimateID: 42, RevisionNo: 2}, nil)
		repo.EXPECT().AppendRevision(gomock.Any(), gomock.Any()).Return(fmt.Errorf("append: %w", interfaces.ErrConcurrentUpdate))

		_, err := uc.Revise(ctx, principal, 42, ReviseEstimateCommand{})
		if !errors.Is(err, ErrConcurrentRevision) {
			t.Fatalf("expected ErrConcurrentRevision, got %v", err)
		}
	})

	t.Run("invalid formula leaves current revision untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), int64(42)).Return(current, nil)
		repo.EXPECT().GetRevision(gomock.Any(), "rev-2").Return(entities.Revision{ID: "rev-2", EstimateID: 42, RevisionNo: 2}, nil)

		sections := []entities.Section{{
			SectionOrder: 1,
			SectionType:  entities.SectionTypeOverhead,
			Lines:        []entities.Line{{CalcMode: entities.CalcModeFormula, Formula: "MATERIAL + TAXES"}},
		}}
		_, err := uc.Revise(ctx, principal, 42, ReviseEstimateCommand{Sections: sections})
		var fe *formula.Error
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, formula.KindUnknownVariable, fe.Kind)
	})

	t.Run("unknown section type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), int64(42)).Return(current, nil)
		repo.EXPECT().GetRevision(gomock.Any(), "rev-2").Return(entities.Revision{ID: "rev-2", EstimateID: 42, RevisionNo: 2}, nil)

		_, err := uc.Revise(ctx, principal, 42, ReviseEstimateCommand{Sections: []entities.Section{{SectionType: "TRAVEL"}}})
		if !errors.Is(err, ErrInvalidSections) {
			t.Fatalf("expected ErrInvalidSections, got %v", err)
		}
	})
}

func TestEstimateUseCase_UpdateBusinessState(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid state", func(t *testing.T) {
		uc := newTestUseCase(nil, nil)
		_, err := uc.UpdateBusinessState(ctx, principal, 1, "PAUSED")
		if !errors.Is(err, ErrInvalidBusinessState) {
			t.Fatalf("expected ErrInvalidBusinessState, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), int64(1)).Return(entities.Estimate{ID: 1}, nil)
		repo.EXPECT().UpdateBusinessState(gomock.Any(), int64(1), entities.BusinessStateDone, fixedNow).
			Return(entities.Estimate{ID: 1, BusinessState: entities.BusinessStateDone}, nil)

		e, err := uc.UpdateBusinessState(ctx, principal, 1, entities.BusinessStateDone)
		require.NoError(t, err)
		assert.Equal(t, entities.BusinessStateDone, e.BusinessState)
	})
}

func TestEstimateUseCase_DeleteAndPurge(t *testing.T) {
	ctx := context.Background()

	t.Run("delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestUseCase(repo, nil)

		e := entities.Estimate{ID: 5, ProjectID: 3}
		repo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(e, nil)
		repo.EXPECT().SoftDelete(gomock.Any(), e, fixedNow).Return(nil)

		require.NoError(t, uc.Delete(ctx, principal, 5))
	})

	t.Run("delete raced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(entities.Estimate{ID: 5}, nil)
		repo.EXPECT().SoftDelete(gomock.Any(), gomock.Any(), gomock.Any()).Return(interfaces.ErrConcurrentUpdate)

		if err := uc.Delete(ctx, principal, 5); !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})

	t.Run("purge accepts soft deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(entities.Estimate{ID: 5, DeletedAt: &fixedNow}, nil)
		repo.EXPECT().Purge(gomock.Any(), int64(5)).Return(nil)

		require.NoError(t, uc.Purge(ctx, 5))
	})

	t.Run("purge missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIEstimateRepository(ctrl)
		uc := newTestUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(entities.Estimate{}, nil)

		if err := uc.Purge(ctx, 5); !errors.Is(err, ErrEstimateNotFound) {
			t.Fatalf("expected ErrEstimateNotFound, got %v", err)
		}
	})
}

func TestEstimateUseCase_Preview(t *testing.T) {
	uc := newTestUseCase(nil, nil)
	res, err := uc.Preview(context.Background(), sampleSections())
	require.NoError(t, err)
	assert.InDelta(t, 11000, res.Subtotal, 1e-9)
	assert.InDelta(t, 1100, res.Tax, 1e-9)
	assert.InDelta(t, 12100, res.Total, 1e-9)
}

func TestEstimateUseCase_PreviewRejectsOverflow(t *testing.T) {
	uc := newTestUseCase(nil, nil)
	sections := []entities.Section{{
		SectionOrder: 1,
		SectionType:  entities.SectionTypeMaterial,
		Lines: []entities.Line{
			{LineOrder: 1, Name: "rebar", Qty: 1e200, UnitPrice: f64(1e200), CalcMode: entities.CalcModeNormal},
		},
	}}
	_, err := uc.Preview(context.Background(), sections)
	require.ErrorIs(t, err, calculation.ErrAmountOutOfRange)
	var le *calculation.LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "rebar", le.Name)
}
