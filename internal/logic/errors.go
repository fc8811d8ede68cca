package logic

import "errors"

// 业务错误，在任何写入发生前完成校验的错误不会留下半成品数据
var (
	ErrUnauthenticated      = errors.New("未登录，无法捐赠")
	ErrInvalidAmount        = errors.New("捐赠金额必须是大于0的有效数字")
	ErrCampaignNotAvailable = errors.New("活动不存在或未通过审核，无法接受捐赠")
	ErrCampaignNotFound     = errors.New("活动不存在")
	ErrPermissionDenied     = errors.New("没有操作该活动的权限")
	ErrInvalidTransition    = errors.New("活动审核状态不允许再次变更")
	ErrReconciliationFailed = errors.New("筹款金额对账写入失败")
)
