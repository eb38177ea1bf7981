package blendtest

import "fmt"

// SceneDNA declares the datablock structures the scene converters cover.
// Layouts are simplified relative to real files but self-consistent:
// every length is exactly the sum of the declared fields at the given
// pointer width, and payloads are written field by field in declaration
// order.
func SceneDNA(ptrSize int) *DNABuilder {
	b := NewDNABuilder(ptrSize)

	b.Struct("ID",
		"char name[24]",
		"short flag",
		"char pad[6]",
		"Library *lib",
	)
	b.Struct("ListBase",
		"void *first",
		"void *last",
	)
	b.Struct("PackedFile",
		"int size",
		"int seek",
		"void *data",
	)
	b.Struct("Library",
		"ID id",
		"char name[160]",
		"Library *parent",
	)
	b.Struct("Base",
		"Base *next",
		"Base *prev",
		"Object *object",
	)
	b.Struct("Scene",
		"ID id",
		"Object *camera",
		"World *world",
		"ListBase base",
		"Base *basact",
		"Collection *master_collection",
	)
	b.Struct("Object",
		"ID id",
		"short type",
		"char pad[6]",
		"Object *parent",
		"Object *track",
		"void *data",
		"Group *dup_group",
		"int lay",
		"char pad2[4]",
		"float obmat[4][4]",
		"float parentinv[4][4]",
		"ListBase modifiers",
	)
	b.Struct("MVert",
		"float co[3]",
		"short no[3]",
		"char flag",
		"char bweight",
	)
	b.Struct("MEdge",
		"int v1",
		"int v2",
		"char crease",
		"char pad3",
		"short flag",
	)
	b.Struct("MFace",
		"int v1",
		"int v2",
		"int v3",
		"int v4",
		"char mat_nr",
		"char edcode",
		"char flag",
		"char pad3",
	)
	b.Struct("MTFace",
		"float uv[4][2]",
		"Image *tpage",
		"char flag",
		"char transp",
		"short mode",
		"short tile",
		"short unwrap",
	)
	b.Struct("MLoop",
		"int v",
		"int e",
	)
	b.Struct("MLoopUV",
		"float uv[2]",
		"int flag",
	)
	b.Struct("MLoopCol",
		"char r",
		"char g",
		"char b",
		"char a",
	)
	b.Struct("MPoly",
		"int loopstart",
		"int totloop",
		"short mat_nr",
		"char flag",
		"char pad3",
	)
	b.Struct("MCol",
		"char a",
		"char r",
		"char g",
		"char b",
	)
	b.Struct("MDeformWeight",
		"int def_nr",
		"float weight",
	)
	b.Struct("MDeformVert",
		"MDeformWeight *dw",
		"int totweight",
		"int flag",
	)
	b.Struct("CustomDataLayer",
		"int type",
		"int offset",
		"int flag",
		"int active",
		"char name[64]",
		"void *data",
	)
	b.Struct("CustomData",
		"CustomDataLayer *layers",
		"int totlayer",
		"int maxlayer",
		"int totsize",
		"char pad2[4]",
	)
	b.Struct("Mesh",
		"ID id",
		"MVert *mvert",
		"MEdge *medge",
		"MFace *mface",
		"MTFace *mtface",
		"MLoop *mloop",
		"MLoopUV *mloopuv",
		"MLoopCol *mloopcol",
		"MPoly *mpoly",
		"MCol *mcol",
		"MDeformVert *dvert",
		"Material **mat",
		"CustomData vdata",
		"CustomData ldata",
		"CustomData pdata",
		"int totvert",
		"int totedge",
		"int totface",
		"int totloop",
		"int totpoly",
	)
	b.Struct("MTex",
		"short texco",
		"short mapto",
		"short blendtype",
		"char pad4[2]",
		"Tex *tex",
		"char uvname[64]",
		"float ofs[3]",
		"float size[3]",
		"float colfac",
		"char pad2[4]",
	)
	b.Struct("Material",
		"ID id",
		"float r",
		"float g",
		"float b",
		"float specr",
		"float specg",
		"float specb",
		"float alpha",
		"float spec",
		"float emit",
		"float amb",
		"short har",
		"char use_nodes",
		"char pad3",
		"MTex *mtex[18]",
	)
	b.Struct("Tex",
		"ID id",
		"short type",
		"short imaflag",
		"char pad2[4]",
		"Image *ima",
	)
	b.Struct("Image",
		"ID id",
		"char name[160]",
		"short source",
		"short type",
		"char pad2[4]",
		"PackedFile *packedfile",
	)
	b.Struct("Camera",
		"ID id",
		"char type",
		"char dtx",
		"short flag",
		"char pad2[4]",
		"float lens",
		"float ortho_scale",
		"float clipsta",
		"float clipend",
		"float shiftx",
		"float shifty",
	)
	b.Struct("Lamp",
		"ID id",
		"short type",
		"short flag",
		"char pad2[4]",
		"float r",
		"float g",
		"float b",
		"float energy",
		"float dist",
		"float spotsize",
		"float spotblend",
		"float att1",
		"float att2",
	)
	b.Struct("World",
		"ID id",
		"float horr",
		"float horg",
		"float horb",
		"float ambr",
		"float ambg",
		"float ambb",
	)
	b.Struct("Group",
		"ID id",
		"ListBase gobject",
		"int layer",
		"char pad2[4]",
	)
	b.Struct("GroupObject",
		"GroupObject *next",
		"GroupObject *prev",
		"Object *ob",
	)
	b.Struct("ModifierData",
		"ModifierData *next",
		"ModifierData *prev",
		"int type",
		"int mode",
		"char name[64]",
	)
	b.Struct("SubsurfModifierData",
		"ModifierData modifier",
		"short subdivType",
		"short levels",
		"short renderLevels",
		"short flags",
	)
	b.Struct("MirrorModifierData",
		"ModifierData modifier",
		"short axis",
		"short flag",
		"float tolerance",
		"Object *mirror_ob",
	)
	b.Struct("Collection",
		"ID id",
		"ListBase gobject",
		"ListBase children",
	)
	b.Struct("CollectionObject",
		"CollectionObject *next",
		"CollectionObject *prev",
		"Object *ob",
	)
	b.Struct("CollectionChild",
		"CollectionChild *next",
		"CollectionChild *prev",
		"Collection *collection",
	)

	return b
}

// Cube scene addresses. Kept well away from the builder's DNA block
// address so no range overlaps.
const (
	cubeScene      = 0x02000000
	cubeBaseCube   = 0x02001000
	cubeBaseLamp   = 0x02002000
	cubeBaseCam    = 0x02003000
	cubeObjCube    = 0x02010000
	cubeObjLamp    = 0x02011000
	cubeObjCam     = 0x02012000
	cubeMesh       = 0x02020000
	cubeMVerts     = 0x02021000
	cubeMFaces     = 0x02022000
	cubeMatList    = 0x02023000
	cubeMaterial   = 0x02030000
	cubeMTex       = 0x02031000
	cubeTex        = 0x02032000
	cubeIma        = 0x02033000
	cubePackedFile = 0x02034000
	cubePackedData = 0x02035000
	cubeLamp       = 0x02040000
	cubeCamera     = 0x02041000
	cubeWorld      = 0x02042000
	cubeSubsurf    = 0x02050000
	cubeMirror     = 0x02051000
)

// cubeNormal is 1/sqrt(3) on the fixed-point short scale, the outward
// corner normal component of a unit cube.
const cubeNormal = 18918

// WriteID appends an ID payload matching the SceneDNA layout: a null
// library link and the given datablock name.
func WriteID(w *Writer, name string) {
	w.CStr(name, 24).I16(0).Pad(6).Ptr(0)
}

// WriteIdentity appends a 4x4 identity matrix with the given translation
// in the last row.
func WriteIdentity(w *Writer, tx, ty, tz float32) {
	w.F32(1).F32(0).F32(0).F32(0)
	w.F32(0).F32(1).F32(0).F32(0)
	w.F32(0).F32(0).F32(1).F32(0)
	w.F32(tx).F32(ty).F32(tz).F32(1)
}

// WriteCustomData appends an empty CustomData payload matching the
// SceneDNA layout.
func WriteCustomData(w *Writer) {
	w.Ptr(0).I32(0).I32(0).I32(0).Pad(4)
}

// CubeImage renders a complete little-endian 64-bit scene: a cube mesh
// object carrying a material, an image texture with a packed payload and
// a two-entry modifier stack, plus a lamp, a camera and a world. One
// block per datablock, DATA blocks for arrays, the way 2.7x writes
// files.
func CubeImage() []byte {
	d := SceneDNA(8)
	img := New()

	pay := func(name string, count int, write func(w *Writer)) []byte {
		w := NewWriter(img.Order, img.PointerSize)
		write(w)
		if got, want := w.Len(), count*d.Size(name); got != want {
			panic(fmt.Sprintf("blendtest: %s payload is %d bytes, DNA says %d", name, got, want))
		}
		return w.Bytes()
	}

	img.Block("SC", cubeScene, d.Index("Scene"), 1, pay("Scene", 1, func(w *Writer) {
		WriteID(w, "SCScene")
		w.Ptr(cubeObjCam)  // camera
		w.Ptr(cubeWorld)   // world
		w.Ptr(cubeBaseCube).Ptr(cubeBaseCam)
		w.Ptr(cubeBaseCube) // basact
		w.Ptr(0)            // master_collection
	}))

	base := func(next, object uint64) []byte {
		return pay("Base", 1, func(w *Writer) {
			w.Ptr(next).Ptr(0).Ptr(object)
		})
	}
	img.Block("DATA", cubeBaseCube, d.Index("Base"), 1, base(cubeBaseLamp, cubeObjCube))
	img.Block("DATA", cubeBaseLamp, d.Index("Base"), 1, base(cubeBaseCam, cubeObjLamp))
	img.Block("DATA", cubeBaseCam, d.Index("Base"), 1, base(0, cubeObjCam))

	object := func(name string, typ int16, data uint64, tx, ty, tz float32, modFirst, modLast uint64) []byte {
		return pay("Object", 1, func(w *Writer) {
			WriteID(w, name)
			w.I16(typ).Pad(6)
			w.Ptr(0) // parent
			w.Ptr(0) // track
			w.Ptr(data)
			w.Ptr(0) // dup_group
			w.I32(1).Pad(4)
			WriteIdentity(w, tx, ty, tz)
			WriteIdentity(w, 0, 0, 0)
			w.Ptr(modFirst).Ptr(modLast)
		})
	}
	img.Block("OB", cubeObjCube, d.Index("Object"), 1,
		object("OBCube", 1, cubeMesh, 1, 2, 3, cubeSubsurf, cubeMirror))
	img.Block("OB", cubeObjLamp, d.Index("Object"), 1,
		object("OBLamp", 10, cubeLamp, 4, 5, 6, 0, 0))
	img.Block("OB", cubeObjCam, d.Index("Object"), 1,
		object("OBCamera", 11, cubeCamera, 0, 0, 10, 0, 0))

	img.Block("ME", cubeMesh, d.Index("Mesh"), 1, pay("Mesh", 1, func(w *Writer) {
		WriteID(w, "MECube")
		w.Ptr(cubeMVerts)
		w.Ptr(0) // medge
		w.Ptr(cubeMFaces)
		w.Ptr(0).Ptr(0).Ptr(0).Ptr(0).Ptr(0).Ptr(0) // mtface..mcol
		w.Ptr(0)                                    // dvert
		w.Ptr(cubeMatList)
		WriteCustomData(w)
		WriteCustomData(w)
		WriteCustomData(w)
		w.I32(8).I32(0).I32(6).I32(0).I32(0)
	}))

	corners := [8][3]float32{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	img.Block("DATA", cubeMVerts, d.Index("MVert"), 8, pay("MVert", 8, func(w *Writer) {
		for _, c := range corners {
			w.F32(c[0]).F32(c[1]).F32(c[2])
			for _, v := range c {
				n := int16(cubeNormal)
				if v < 0 {
					n = -cubeNormal
				}
				w.I16(n)
			}
			w.Byte(0).Byte(0)
		}
	}))

	// Quads carrying vertex 0 are stored rotated so it never lands in v4,
	// which the legacy face decoder would read as a triangle marker.
	quads := [6][4]int32{
		{0, 1, 2, 3}, {4, 5, 6, 7}, {0, 4, 5, 1},
		{1, 5, 6, 2}, {2, 6, 7, 3}, {0, 3, 7, 4},
	}
	img.Block("DATA", cubeMFaces, d.Index("MFace"), 6, pay("MFace", 6, func(w *Writer) {
		for _, q := range quads {
			w.I32(q[0]).I32(q[1]).I32(q[2]).I32(q[3])
			w.Byte(0).Byte(0).Byte(0).Byte(0)
		}
	}))

	img.Block("DATA", cubeMatList, 0, 1, NewWriter(img.Order, 8).Ptr(cubeMaterial).Bytes())

	img.Block("MA", cubeMaterial, d.Index("Material"), 1, pay("Material", 1, func(w *Writer) {
		WriteID(w, "MARed")
		w.F32(0.8).F32(0.1).F32(0.1)
		w.F32(1).F32(1).F32(1)
		w.F32(1)    // alpha
		w.F32(0.5)  // spec
		w.F32(0)    // emit
		w.F32(1)    // amb
		w.I16(50).Byte(0).Byte(0)
		w.Ptr(cubeMTex)
		for i := 1; i < 18; i++ {
			w.Ptr(0)
		}
	}))

	img.Block("DATA", cubeMTex, d.Index("MTex"), 1, pay("MTex", 1, func(w *Writer) {
		w.I16(16) // texco UV
		w.I16(1)  // mapto color
		w.I16(0).Pad(2)
		w.Ptr(cubeTex)
		w.CStr("UVMap", 64)
		w.F32(0).F32(0).F32(0)
		w.F32(1).F32(1).F32(1)
		w.F32(1).Pad(4)
	}))

	img.Block("TE", cubeTex, d.Index("Tex"), 1, pay("Tex", 1, func(w *Writer) {
		WriteID(w, "TEChecker")
		w.I16(8) // image texture
		w.I16(0).Pad(4)
		w.Ptr(cubeIma)
	}))

	img.Block("IM", cubeIma, d.Index("Image"), 1, pay("Image", 1, func(w *Writer) {
		WriteID(w, "IMchecker")
		w.CStr("//textures/checker.png", 160)
		w.I16(1).I16(0).Pad(4)
		w.Ptr(cubePackedFile)
	}))

	img.Block("DATA", cubePackedFile, d.Index("PackedFile"), 1, pay("PackedFile", 1, func(w *Writer) {
		w.I32(4).I32(0).Ptr(cubePackedData)
	}))
	img.Block("DATA", cubePackedData, 0, 1, []byte{0xde, 0xad, 0xbe, 0xef})

	img.Block("LA", cubeLamp, d.Index("Lamp"), 1, pay("Lamp", 1, func(w *Writer) {
		WriteID(w, "LAKey")
		w.I16(0).I16(0).Pad(4)
		w.F32(1).F32(1).F32(1)
		w.F32(2)    // energy
		w.F32(30)   // dist
		w.F32(45).F32(0.15)
		w.F32(0).F32(0)
	}))

	img.Block("CA", cubeCamera, d.Index("Camera"), 1, pay("Camera", 1, func(w *Writer) {
		WriteID(w, "CACamera")
		w.Byte(0).Byte(0).I16(0).Pad(4)
		w.F32(35).F32(7.3)
		w.F32(0.1).F32(100)
		w.F32(0).F32(0)
	}))

	img.Block("WO", cubeWorld, d.Index("World"), 1, pay("World", 1, func(w *Writer) {
		WriteID(w, "WOWorld")
		w.F32(0.05).F32(0.05).F32(0.1)
		w.F32(0).F32(0).F32(0)
	}))

	img.Block("DATA", cubeSubsurf, d.Index("SubsurfModifierData"), 1, pay("SubsurfModifierData", 1, func(w *Writer) {
		w.Ptr(cubeMirror).Ptr(0)
		w.I32(5).I32(3)
		w.CStr("Subsurf", 64)
		w.I16(0).I16(2).I16(2).I16(0)
	}))
	img.Block("DATA", cubeMirror, d.Index("MirrorModifierData"), 1, pay("MirrorModifierData", 1, func(w *Writer) {
		w.Ptr(0).Ptr(cubeSubsurf)
		w.I32(8).I32(3)
		w.CStr("Mirror", 64)
		w.I16(0).I16(8).F32(0.001)
		w.Ptr(cubeObjCube)
	}))

	img.DNA(d.Tables())
	return img.Bytes()
}
