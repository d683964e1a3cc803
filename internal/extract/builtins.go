package extract

import "github.com/zgunz42/deepkit-framework/internal/typeir"

// builtinByName recognizes the nominal type names the resolver treats as
// built in: resolved without ever consulting the host type checker,
// so a shadowing user declaration of the same name in unrelated scope can
// never be confused with these.
var builtinByName = map[string]typeir.BuiltinKind{
	"Date":        typeir.BuiltinDate,
	"ArrayBuffer": typeir.BuiltinArrayBuffer,
	"Promise":     typeir.BuiltinPromise,

	"Int8Array":         typeir.BuiltinTypedArray,
	"Uint8Array":        typeir.BuiltinTypedArray,
	"Uint8ClampedArray": typeir.BuiltinTypedArray,
	"Int16Array":        typeir.BuiltinTypedArray,
	"Uint16Array":       typeir.BuiltinTypedArray,
	"Int32Array":        typeir.BuiltinTypedArray,
	"Uint32Array":       typeir.BuiltinTypedArray,
	"Float32Array":      typeir.BuiltinTypedArray,
	"Float64Array":      typeir.BuiltinTypedArray,
	"BigInt64Array":     typeir.BuiltinTypedArray,
	"BigUint64Array":    typeir.BuiltinTypedArray,
}

func lookupBuiltin(name string) (typeir.BuiltinKind, bool) {
	kind, ok := builtinByName[name]
	return kind, ok
}
