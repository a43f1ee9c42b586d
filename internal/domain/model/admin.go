package model

// 仕入先（proveedores）
type Supplier struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// 作成・更新とも全項目を送る
type SupplierInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// 商品カテゴリ（categorias）
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CategoryInput struct {
	Name string `json:"name"`
}

// バックエンドのユーザー。パスワードは持たない。
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Cedula   string `json:"cedula"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"is_active"`
}

type UserCreate struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Cedula   string `json:"cedula"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// nilの項目は変更しない
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Cedula   *string `json:"cedula,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Role     *Role   `json:"role,omitempty"`
}
