package domain

// Built-in primitive types shared by all languages.
const (
	BuiltinsLanguageKey     = "LionCore-builtins"
	BuiltinsLanguageVersion = "2023.1"

	BuiltinString  = "LionCore-builtins-String"
	BuiltinBoolean = "LionCore-builtins-Boolean"
	BuiltinInteger = "LionCore-builtins-Integer"
	BuiltinJSON    = "LionCore-builtins-JSON"
)

// BuiltinPointer returns the meta-pointer of a built-in primitive type.
func BuiltinPointer(key string) MetaPointer {
	return MetaPointer{Language: BuiltinsLanguageKey, Version: BuiltinsLanguageVersion, Key: key}
}

// BuiltinsLanguage returns the language holding the built-in primitive types.
func BuiltinsLanguage() Language {
	primitive := func(key, name string) Classifier {
		return Classifier{Kind: ClassifierPrimitiveType, Key: key, Name: name}
	}
	return Language{
		Key:     BuiltinsLanguageKey,
		Version: BuiltinsLanguageVersion,
		Name:    "LionCore.builtins",
		Classifiers: []Classifier{
			primitive(BuiltinString, "String"),
			primitive(BuiltinBoolean, "Boolean"),
			primitive(BuiltinInteger, "Integer"),
			primitive(BuiltinJSON, "JSON"),
		},
	}
}
