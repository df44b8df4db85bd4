package catalog

// jls3 lists the classes explicitly required by normative text in The Java
// Language Specification, Third Edition (Java SE 5). Most are referenced
// repeatedly; one reference per class is kept. The list was compiled by
// hand, so the computed closure is a lower bound.
var jls3 = &Catalog{
	Name:        "jls3",
	Title:       "The Java Language Specification, Third Edition",
	Provider:    "schema",
	Description: "Classes the Java SE 5 language requires by name",
	Entries: []Entry{
		{"java.lang.Object", "JLS 4.3.2, p. 47", "root of the class hierarchy"},
		{"java.lang.String", "JLS 4.3.3, p. 48", "character string"},

		{"java.lang.Boolean", "JLS 5.1.7, p. 87", "boxing conversion"},
		{"java.lang.Byte", "JLS 5.1.7, p. 87", "boxing conversion"},
		{"java.lang.Character", "JLS 5.1.7, p. 87", "boxing conversion"},
		{"java.lang.Short", "JLS 5.1.7, p. 87", "boxing conversion"},
		{"java.lang.Integer", "JLS 5.1.7, p. 87", "boxing conversion"},
		{"java.lang.Long", "JLS 5.1.7, p. 87", "boxing conversion"},
		{"java.lang.Float", "JLS 5.1.7, p. 87", "boxing conversion"},
		{"java.lang.Double", "JLS 5.1.7, p. 87", "boxing conversion"},

		{"java.lang.Void", "JLS 15.8.2, p. 421", "type of void.class"},
		{"java.lang.Thread", "JLS 17, p. 553", "thread of execution"},
		{"java.lang.ThreadGroup", "JLS 11.3, p. 303", "group of threads"},
		{"java.lang.Class", "JLS 4.3.2, p. 48", "runtime representation of a class"},
		{"java.lang.ClassLoader", "JLS 12.2, p. 312", "loads classes into the VM"},
		{"java.lang.Runtime", "JLS 12.8, p. 331", "instantiable access to the VM"},
		{"java.lang.System", "JLS 17.5.4, p. 578", "non-instantiable access to the VM"},
		{"java.lang.Math", "JLS 3.10.2, p. 26", "mathematical operations"},
		{"java.lang.Cloneable", "JLS 10.7, p. 292", "objects that can be duplicated"},
		{"java.io.Serializable", "JLS 10.7, p. 292", "objects that can be written to a byte stream"},
		{"java.lang.Iterable", "JLS 14.14.2, p. 387", "target of the for-each loop"},
		{"java.lang.Enum", "JLS 8.9, p. 251", "superclass of all enum types"},

		{"java.lang.annotation.Annotation", "JLS 9.6, p. 272", "superinterface of all annotation types"},
		{"java.lang.annotation.Target", "JLS 9.6.1.1, p. 278", "where an annotation is allowed"},
		{"java.lang.annotation.ElementType", "JLS 9.6.1.1, p. 278", "where an annotation is allowed"},
		{"java.lang.annotation.Retention", "JLS 9.6.1.2, p. 278", "how long an annotation is retained"},
		{"java.lang.annotation.RetentionPolicy", "JLS 9.6.1.2, p. 278", "how long an annotation is retained"},
		{"java.lang.annotation.Inherited", "JLS 9.6.1.3, p. 279", "annotation applies to subclasses"},
		{"java.lang.Override", "JLS 9.6.1.4, p. 279", "method overrides another"},
		{"java.lang.SuppressWarnings", "JLS 9.6.1.5, p. 280", "suppress compiler warnings"},
		{"java.lang.Deprecated", "JLS 9.6.1.6, p. 280", "obsolete API element"},

		{"java.lang.Throwable", "JLS 11.5, p. 306", "root of the exception and error hierarchies"},
		{"java.lang.Exception", "JLS 11.2.3, p. 301", "root of the exception hierarchy"},
		{"java.lang.RuntimeException", "JLS 11.2.5, p. 301", "root of the unchecked exception hierarchy"},
		{"java.lang.Error", "JLS 11.2.4, p. 301", "root of the error hierarchy"},

		{"java.lang.ArithmeticException", "JLS 4.2.3, p. 37", ""},
		{"java.lang.IllegalArgumentException", "JLS 8.9, p. 252", ""},
		{"java.lang.ArrayIndexOutOfBoundsException", "JLS 10.4, p. 290", ""},
		{"java.lang.ArrayStoreException", "JLS 10.10, p. 294", ""},
		{"java.lang.ClassCastException", "JLS 15.5, p. 412", ""},
		{"java.lang.CloneNotSupportedException", "JLS 10.7, p. 292", ""},
		{"java.lang.IllegalMonitorStateException", "JLS 17.8, p. 580", ""},
		{"java.lang.InterruptedException", "JLS 17.8, p. 580", ""},
		{"java.lang.NegativeArraySizeException", "JLS 15.10.1, p. 432", ""},
		{"java.lang.NullPointerException", "JLS 15.12.4.4, p. 476", ""},
		{"java.lang.AbstractMethodError", "JLS 13.4.16, p. 352", ""},
		{"java.lang.AssertionError", "JLS 14.10, p. 376", ""},
		{"java.lang.ClassCircularityError", "JLS 12.2.1, p. 313", ""},
		{"java.lang.ClassFormatError", "JLS 12.2.1, p. 313", ""},
		{"java.lang.ExceptionInInitializerError", "JLS 12.4.2, p. 321", ""},
		{"java.lang.IncompatibleClassChangeError", "JLS 13.4.10, p. 349", ""},
		{"java.lang.InstantiationError", "JLS 12.3.3, p. 316", ""},
		{"java.lang.InternalError", "JLS 11.4, p. 304", ""},
		{"java.lang.LinkageError", "JLS 12.2.1, p. 313", ""},
		{"java.lang.NoClassDefFoundError", "JLS 12.2.1, p. 313", ""},
		{"java.lang.IllegalAccessError", "JLS 12.3.3, p. 315", ""},
		{"java.lang.NoSuchFieldError", "JLS 12.3.3, p. 316", ""},
		{"java.lang.NoSuchMethodError", "JLS 12.3.3, p. 316", ""},
		{"java.lang.OutOfMemoryError", "JLS 12.5, p. 313", ""},
		{"java.lang.InstantiationException", "JLS 13.4.1, p. 340", ""},
		{"java.lang.StackOverflowError", "JLS 15.12.4.5, p. 477", ""},
		{"java.lang.VerifyError", "JLS 12.3.1, p. 314", ""},
		{"java.lang.UnsatisfiedLinkError", "JLS 12.3.3, p. 316", ""},
		{"java.lang.VirtualMachineError", "JLS 11.5.2, p. 307", ""},
	},
}

// goSpec lists the defined types the Go language specification requires by
// name. Predeclared basic types are primitive and contribute nothing.
var goSpec = &Catalog{
	Name:        "go-spec",
	Title:       "The Go Programming Language Specification",
	Provider:    "go",
	Description: "Defined types the Go language requires by name",
	Entries: []Entry{
		{"error", "Errors", "predeclared error interface"},
		{"comparable", "Type constraints", "predeclared constraint interface"},
		{"runtime.Error", "Run-time panics", "type of run-time panic values"},
	},
}
