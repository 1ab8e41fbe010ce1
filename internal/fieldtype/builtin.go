package fieldtype

// commonFormats is the format table of every built-in type. Register copies
// it, so specs never share a map.
var commonFormats = map[string]string{
	"null":           "null=True",
	"blank":          "blank=True",
	"unique":         "unique=True",
	"db_index":       "db_index=True",
	"primary_key":    "primary_key=True",
	"editable":       "editable=False",
	"auto_now":       "auto_now=True",
	"auto_now_add":   "auto_now_add=True",
	"max_length":     "max_length={value}",
	"max_digits":     "max_digits={value}",
	"decimal_places": "decimal_places={value}",
	"default":        "default={value}",
	"help_text":      "help_text='{value}'",
	"verbose_name":   "verbose_name='{value}'",
	"upload_to":      "upload_to='{value}'",
	"to":             "to='{value}'",
	"related_name":   "related_name='{value}'",
	"on_delete":      "on_delete=models.{value}",
}

// Builtin returns the registry of supported Django field types. The menu
// offered by the interactive prompt follows this order.
func Builtin() *Registry {
	r := NewRegistry()
	for _, spec := range []Spec{
		newSpec("BigIntegerField"),
		newSpec("BinaryField"),
		newSpec("BooleanField"),
		newSpec("CharField", Typed("max_length", KindInt, "250")),
		newSpec("DateField"),
		newSpec("DateTimeField"),
		newSpec("DecimalField",
			Typed("max_digits", KindInt, "10"),
			Typed("decimal_places", KindInt, "2"),
		),
		newSpec("DurationField"),
		newSpec("EmailField"),
		newSpec("FileField"),
		newSpec("FilePathField"),
		newSpec("FloatField"),
		newSpec("ImageField"),
		newSpec("IntegerField"),
		newSpec("GenericIPAddressField"),
		newSpec("NullBooleanField"),
		newSpec("PositiveIntegerField"),
		newSpec("PositiveSmallIntegerField"),
		newSpec("SlugField"),
		newSpec("SmallAutoField"),
		newSpec("SmallIntegerField"),
		newSpec("TextField"),
		newSpec("TimeField"),
		newSpec("URLField"),
		newSpec("UUIDField"),
		newSpec("ForeignKey", Bare("to"), Typed("on_delete", KindString, "CASCADE")),
		newSpec("OneToOneField", Bare("to"), Typed("on_delete", KindString, "CASCADE")),
		newSpec("ManyToManyField", Bare("to")),
	} {
		r.Register(spec)
	}
	return r
}

func newSpec(tag string, required ...Requirement) Spec {
	return Spec{Tag: tag, Required: required, Formats: commonFormats}
}
