package handler

import (
	"net/http"

	"walletpool/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodPost,
				Path:    "/api/wallet/create",
				Handler: CreateWalletsHandler(svcCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/wallet/balances",
				Handler: BalancesHandler(svcCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/wallet/fund",
				Handler: FundWalletsHandler(svcCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/wallet/drain",
				Handler: DrainWalletsHandler(svcCtx),
			},
		},
	)
}
