package scene

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"asset-viewer/core"
	"asset-viewer/math"
)

// LoadGLTF opens a .glb or .gltf file and flattens its default scene into a
// list of meshes with node transforms baked into the vertices. Embedded
// images are decoded into the material slots; external images are recorded
// as paths and loaded when the material is realized.
func LoadGLTF(path string) ([]*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	dir := filepath.Dir(path)

	images := make([]TextureSlot, len(doc.Images))
	for i, img := range doc.Images {
		switch {
		case img.BufferView != nil:
			raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if err != nil {
				slog.Warn("gltf: image buffer view", "image", i, "err", err)
				continue
			}
			name := img.Name
			if name == "" {
				name = fmt.Sprintf("gltf_img_%d", i)
			}
			tex, err := decodeImageBytes(name, raw)
			if err != nil {
				slog.Warn("gltf: image decode", "image", i, "err", err)
				continue
			}
			images[i] = TextureSlot{Texture: tex}
		case img.IsEmbeddedResource():
			raw, err := img.MarshalData()
			if err != nil {
				slog.Warn("gltf: data uri", "image", i, "err", err)
				continue
			}
			tex, err := decodeImageBytes(fmt.Sprintf("gltf_img_%d", i), raw)
			if err != nil {
				slog.Warn("gltf: image decode", "image", i, "err", err)
				continue
			}
			images[i] = TextureSlot{Texture: tex}
		case img.URI != "":
			images[i] = TextureSlot{Path: filepath.Join(dir, img.URI)}
		}
	}

	textureSlot := func(index int) TextureSlot {
		if index < 0 || index >= len(doc.Textures) {
			return TextureSlot{}
		}
		src := doc.Textures[index].Source
		if src == nil || *src >= len(images) {
			return TextureSlot{}
		}
		return images[*src]
	}

	materials := make([]*Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := DefaultMaterial()
		mat.Name = gm.Name

		if pbr := gm.PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			mat.Albedo = core.Color{
				R: float32(cf[0]), G: float32(cf[1]),
				B: float32(cf[2]), A: float32(cf[3]),
			}
			if pbr.BaseColorTexture != nil {
				mat.Slots[TextureDiffuse] = textureSlot(pbr.BaseColorTexture.Index)
			}
			if pbr.MetallicRoughnessTexture != nil {
				mat.Slots[TextureRoughness] = textureSlot(pbr.MetallicRoughnessTexture.Index)
			}
			// Smooth surfaces get a tight highlight.
			roughness := float32(pbr.RoughnessFactorOrDefault())
			mat.Shininess = (1.0-roughness)*(1.0-roughness)*128.0 + 1.0
		}
		if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
			mat.Slots[TextureNormal] = textureSlot(*gm.NormalTexture.Index)
		}
		materials[i] = mat
	}

	var meshes []*Mesh
	var visit func(nodeIdx int, parent math.Mat4, depth int)
	visit = func(nodeIdx int, parent math.Mat4, depth int) {
		if nodeIdx < 0 || nodeIdx >= len(doc.Nodes) || depth > len(doc.Nodes) {
			return
		}
		node := doc.Nodes[nodeIdx]
		world := nodeMatrix(node).Mul(parent)

		if node.Mesh != nil && *node.Mesh < len(doc.Meshes) {
			gm := doc.Meshes[*node.Mesh]
			for pi, prim := range gm.Primitives {
				m, err := loadGLTFPrimitive(doc, gm.Name, pi, prim)
				if err != nil {
					slog.Warn("gltf: primitive skipped", "mesh", gm.Name, "primitive", pi, "err", err)
					continue
				}
				ComputeTangents(m)
				m.Transform(world)
				if prim.Material != nil && *prim.Material < len(materials) {
					m.Material = materials[*prim.Material]
				}
				meshes = append(meshes, m)
			}
		}
		for _, child := range node.Children {
			visit(child, world, depth+1)
		}
	}
	for _, root := range sceneRoots(doc) {
		visit(root, math.Mat4Identity(), 0)
	}

	if len(meshes) == 0 {
		return nil, fmt.Errorf("gltf %q: %w", path, ErrNoGeometry)
	}
	return meshes, nil
}

// sceneRoots returns the root nodes of the default scene, or every
// parentless node when the document names no scene.
func sceneRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	hasParent := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

var identityMatrix = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// nodeMatrix returns the node's local transform. glTF matrices are
// column-major, the same layout as math.Mat4.
func nodeMatrix(n *gltf.Node) math.Mat4 {
	if n.Matrix != [16]float64{} && n.Matrix != identityMatrix {
		var m math.Mat4
		for c := 0; c < 4; c++ {
			for r := 0; r < 4; r++ {
				m[c][r] = float32(n.Matrix[c*4+r])
			}
		}
		return m
	}

	t := n.TranslationOrDefault()
	s := n.ScaleOrDefault()
	r := n.RotationOrDefault() // [x, y, z, w]
	rot := math.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}

	return math.Mat4Scale(math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])}).
		Mul(rot.Normalize().ToMat4()).
		Mul(math.Mat4Translation(math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])}))
}

// loadGLTFPrimitive converts one glTF mesh primitive into a scene.Mesh.
func loadGLTFPrimitive(doc *gltf.Document, meshName string, primIdx int, prim *gltf.Primitive) (*Mesh, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, fmt.Errorf("primitive mode %v: %w", prim.Mode, ErrUnsupportedFormat)
	}

	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32

	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	verts := make([]core.Vertex, len(positions))
	for i, p := range positions {
		v := core.Vertex{
			Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]},
			Normal:   math.Vec3Up,
			Color:    core.ColorWhite,
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math.Vec3{X: n[0], Y: n[1], Z: n[2]}
		}
		if i < len(uvs) {
			// glTF puts the UV origin at the top-left; textures are
			// stored bottom row first.
			v.UV = math.Vec2{X: uvs[i][0], Y: 1 - uvs[i][1]}
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	}
	for _, idx := range indices {
		if int(idx) >= len(verts) {
			return nil, fmt.Errorf("index %d out of range", idx)
		}
	}

	return CreateMeshFromData(name, verts, indices), nil
}
