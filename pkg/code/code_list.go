package code

var (
	Success = NewSuss(200, lang{en: "Success", zh_cn: "成功"})

	ErrorServerInternal  = NewError(10000, lang{en: "Internal server error", zh_cn: "服务内部错误"})
	ErrorInvalidParams   = NewError(10001, lang{en: "Invalid request parameters", zh_cn: "入参错误"})
	ErrorNotFound        = NewError(10002, lang{en: "No such item", zh_cn: "找不到该条目"})
	ErrorTooManyRequests = NewError(10003, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorDBQuery         = NewError(10004, lang{en: "Database query error", zh_cn: "数据库查询错误"})
	ErrorNotFoundAPI     = NewError(10005, lang{en: "No such api", zh_cn: "找不到该接口"})

	ErrorNotUserAuthToken     = NewError(10100, lang{en: "Missing auth token", zh_cn: "缺少认证令牌"})
	ErrorInvalidUserAuthToken = NewError(10101, lang{en: "Invalid auth token", zh_cn: "认证令牌无效"})
	ErrorNotAuthorized        = NewError(10102, lang{en: "Not authorized for this operation", zh_cn: "无权执行此操作"})

	ErrorEntrySave   = NewError(10200, lang{en: "Failed to save entry", zh_cn: "保存条目失败"})
	ErrorEntryDelete = NewError(10201, lang{en: "Failed to delete entry", zh_cn: "删除条目失败"})
	ErrorTagResolve  = NewError(10202, lang{en: "Failed to resolve tag", zh_cn: "解析标签失败"})

	ErrorMigrationInconsistency = NewError(10300, lang{en: "Migration found an unresolvable link", zh_cn: "迁移发现无法解析的关联"})
)
