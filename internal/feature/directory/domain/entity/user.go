package entity

// User はディレクトリに表示する1人のユーザーを表すドメインエンティティです。
// フィールドはリモートAPIのレスポンスをそのまま写したもので、ローカルでは変更しません。
type User struct {
	ID       int    // ユーザーID (リモートAPI側で採番)
	Email    string // メールアドレス
	Username string // ログイン名
	Password string // リモートAPIが返す値をそのまま保持する。検証・復号はしない
	Name     Name
	Address  Address
	Phone    string // 電話番号
}

// Name is the user's real name split into parts.
type Name struct {
	Firstname string
	Lastname  string
}

// Address is the user's postal address.
type Address struct {
	City        string
	Street      string
	Number      int
	Zipcode     string
	Geolocation Geolocation
}

// Geolocation holds coordinates exactly as the remote API returns them
// (strings, not parsed into numbers).
type Geolocation struct {
	Lat  string
	Long string
}
