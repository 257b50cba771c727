package dao

import (
	"context"

	"signalhub/internal/model/entity"
)

type ApiKeyDao interface {

	// 按token查找处于激活状态的凭证，未找到返回 nil, nil
	// 凭证由后台创建，这里只读
	ApiKeyGetBySecret(ctx context.Context, secret string) (*entity.ApiKey, error)
}
