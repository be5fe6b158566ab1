package sumbasic

// Extension is an SMTP server extension.
//
//enumkeys:keys name=ExtensionKey, borrowed, strings, codec
//enumkeys:compare fold_case
type Extension interface {
	isExtension()
	Describe() string
}

// Size limits the message size.
type Size struct {
	Limit uint64
}

func (Size) isExtension()     {}
func (Size) Describe() string { return "size" }

type StartTLS struct{}

func (*StartTLS) isExtension()     {}
func (*StartTLS) Describe() string { return "starttls" }

type Auth struct {
	Mechanisms, Fallback []string
	Base
	*Inner
}

func (Auth) isExtension()     {}
func (Auth) Describe() string { return "auth" }

//enumkeys:variant default
//enumkeys:str equals["x-other"], contains["x-"]
type Other string

func (Other) isExtension()     {}
func (Other) Describe() string { return string(Other("other")) }

type Base struct{ ID int }

type Inner struct{}

type (
	Pair[T any] struct{ A, B T }

	Alias = Size
)
