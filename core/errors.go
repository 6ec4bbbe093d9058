package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 错误分层（见传播策略）：
//   - DATA_LOAD / DIMENSION_MISMATCH：服务端故障，启动失败或内部契约被破坏
//   - NO_KNOWN_HOTELS / INVALID_INPUT：调用方输入问题，外层应映射为 4xx
//   - 其余软降级（无法解析的单个标识、零评分候选、缺少邻居）不产生错误，
//     仅记录日志/标签后在请求内继续
type DomainError struct {
	Code    string // 错误代码（如 "DATA_LOAD", "NO_KNOWN_HOTELS"）
	Message string // 错误消息
	Module  string // 模块名称（如 "catalog", "engine", "similarity"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound          = "NOT_FOUND"          // 资源不存在
	ErrorCodeNotSupported      = "NOT_SUPPORTED"      // 操作不支持
	ErrorCodeInvalidInput      = "INVALID_INPUT"      // 输入无效
	ErrorCodeDataLoad          = "DATA_LOAD"          // 数据源缺失或损坏，启动期致命
	ErrorCodeNoKnownHotels     = "NO_KNOWN_HOTELS"    // 请求中没有任何可解析的已知酒店
	ErrorCodeDimensionMismatch = "DIMENSION_MISMATCH" // 相似度输入向量长度不一致
)

// 模块名称常量
const (
	ModuleCatalog    = "catalog"
	ModuleStore      = "store"
	ModuleSimilarity = "similarity"
	ModuleEngine     = "engine"
	ModuleFeature    = "feature"
)

// 常用错误实例。DataLoad 错误携带现场信息，用 NewDataLoadError 构造。
var (
	// ErrNoKnownHotels 表示请求提供的已知酒店一个都没有解析成功，
	// 没有可排除/可对比的对象，请求级失败（调用方输入问题）。
	ErrNoKnownHotels = NewDomainError(ModuleEngine, ErrorCodeNoKnownHotels, "engine: no known hotels resolved")

	// ErrDimensionMismatch 表示相似度被喂了不等长向量。
	// 这是调用方编程错误而非运行期可恢复状态，立即上抛，不做恢复。
	ErrDimensionMismatch = NewDomainError(ModuleSimilarity, ErrorCodeDimensionMismatch, "similarity: vectors have mismatched dimensions")
)

// NewDataLoadError 构造数据加载错误。策略：数据源缺失、格式损坏、
// 评分表引用了不存在的酒店 id（悬挂外键）都拒绝整次加载，不静默丢弃。
func NewDataLoadError(message string) *DomainError {
	return NewDomainError(ModuleCatalog, ErrorCodeDataLoad, message)
}

// IsDataLoad 检查错误是否为数据加载失败。
func IsDataLoad(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeDataLoad
	}
	return false
}

// IsNoKnownHotels 检查错误是否为“无已知酒店可解析”。
func IsNoKnownHotels(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNoKnownHotels
	}
	return false
}

// IsDimensionMismatch 检查错误是否为向量维度不一致。
func IsDimensionMismatch(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeDimensionMismatch
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}
