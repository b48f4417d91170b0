package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/internal/domain/depreciation"
	"github.com/jhoicas/activos-api/internal/domain/entity"
	"github.com/jhoicas/activos-api/internal/domain/repository"
)

// Query lista activos. El filtro de tenant se inyecta siempre desde el
// principal vía ScopeFilter: ningún caller puede listar fuera de su tenant
// (super_admin ve todos).
func (uc *LedgerUseCase) Query(ctx context.Context, p authz.Principal, in dto.AssetQueryRequest) (*dto.AssetListResponse, error) {
	if err := uc.authorize(p, authz.ActionAssetRead, p.TenantID); err != nil {
		return nil, err
	}
	in.DefaultPage()

	scope := uc.auth.ScopeFilter(p)
	filter := repository.AssetFilter{
		Status:    in.Status,
		Condition: in.Condition,
		Category:  in.Category,
		Search:    in.Search,
	}
	list, total, err := uc.assets.List(ctx, scope, filter, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AssetResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAssetResponse(a))
	}
	return &dto.AssetListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// GetByID devuelve un activo. Un principal de otro tenant recibe la
// denegación CrossTenantAccess, no un not-found genérico.
func (uc *LedgerUseCase) GetByID(ctx context.Context, p authz.Principal, assetID string) (*dto.AssetResponse, error) {
	asset, err := uc.loadAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(p, authz.ActionAssetRead, asset.CompanyID); err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// ComputeAsOf expone el motor de depreciación para reportes: valor en libros
// y depreciación acumulada a una fecha arbitraria, sin tocar el registro.
func (uc *LedgerUseCase) ComputeAsOf(ctx context.Context, p authz.Principal, assetID string, asOf time.Time) (*dto.DepreciationResponse, error) {
	asset, err := uc.loadAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(p, authz.ActionAssetRead, asset.CompanyID); err != nil {
		return nil, err
	}
	res, err := depreciation.ComputeAsOf(depreciation.FromAsset(asset), asOf)
	if err != nil {
		return nil, err
	}
	return &dto.DepreciationResponse{
		AssetID:                 asset.ID,
		AsOf:                    asOf,
		AccumulatedDepreciation: res.AccumulatedDepreciation,
		BookValue:               res.BookValue,
	}, nil
}

// AuditTrail devuelve la historia de auditoría de un activo y el índice de la
// primera fila con cadena rota (-1 si está íntegra), para reportes de
// cumplimiento.
func (uc *LedgerUseCase) AuditTrail(ctx context.Context, p authz.Principal, assetID string) ([]*entity.AuditLog, int, error) {
	asset, err := uc.loadAsset(ctx, assetID)
	if err != nil {
		return nil, 0, err
	}
	if err := uc.authorize(p, authz.ActionAuditRead, asset.CompanyID); err != nil {
		return nil, 0, err
	}
	rows, err := uc.audits.ListForEntity(ctx, "asset", asset.ID)
	if err != nil {
		return nil, 0, err
	}
	broken, err := uc.recorder.VerifyChain(ctx, uc.audits, "asset", asset.ID)
	if err != nil {
		return nil, 0, err
	}
	return rows, broken, nil
}
