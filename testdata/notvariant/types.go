package notvariant

// Config is a plain struct and cannot carry keys.
//
//enumkeys:keys name=ConfigKey
type Config struct {
	Name string
}
