package bill

import (
	"context"

	"Parcelo/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	CreateBill(ctx context.Context, bill *Bill) error
	UpdateBill(ctx context.Context, bill *Bill) error
	DeleteBillById(ctx context.Context, billID ulid.ULID) error
	GetBillById(ctx context.Context, billID ulid.ULID) (*Bill, error)
	GetBills(ctx context.Context, pagination *pkg.PaginationParams) ([]*Bill, int64, error)
}
