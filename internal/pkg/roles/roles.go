package roles

import "errors"

// Role 用户角色
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleWriter Role = "Writer"
	RoleReader Role = "Reader"
)

// ErrInvalidRole 未知角色
var ErrInvalidRole = errors.New("invalid role")

// AllRoles 全部角色，按权限从高到低
var AllRoles = []Role{RoleAdmin, RoleEditor, RoleWriter, RoleReader}

// 角色等级表（数字越大权限越高），全局唯一权威来源
// 其他层一律调用本包，禁止重复声明
var roleHierarchy = map[Role]int{
	RoleAdmin:  4,
	RoleEditor: 3,
	RoleWriter: 2,
	RoleReader: 1,
}

// Rank 返回角色等级
func Rank(r Role) (int, error) {
	rank, ok := roleHierarchy[r]
	if !ok {
		return 0, ErrInvalidRole
	}
	return rank, nil
}

// HasMinimumRole 判断 actorRole 是否达到 requiredRole 的等级
// 未知角色一律视为不满足
func HasMinimumRole(actorRole, requiredRole Role) bool {
	actorRank, err := Rank(actorRole)
	if err != nil {
		return false
	}
	requiredRank, err := Rank(requiredRole)
	if err != nil {
		return false
	}
	return actorRank >= requiredRank
}

// IsValidRole 判断是否为合法角色
func IsValidRole(v string) bool {
	_, ok := roleHierarchy[Role(v)]
	return ok
}
