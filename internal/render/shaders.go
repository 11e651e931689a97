package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"arshapes/internal/render/shading"
)

// Lit shaders: one directional light plus an ambient term taken from the light estimate.
// Same vertex attributes as raylib meshes: vertexPosition, vertexTexCoord, vertexNormal.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform float metallic;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity * (1.0 - metallic);
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specColor = mix(lightColor, tint.rgb, metallic);
  vec3 specular = specColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
	litTexturedFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform float metallic;
uniform sampler2D texture0;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity * (1.0 - metallic);
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  vec3 specColor = mix(lightColor, tint.rgb, metallic);
  vec3 specular = specColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

// litShader is a loaded shader with its uniform locations looked up once.
type litShader struct {
	shader           rl.Shader
	viewPos          int32
	lightDir         int32
	ambient          int32
	lightColor       int32
	lightIntensity   int32
	specularPower    int32
	specularStrength int32
	metallic         int32
}

func loadLitShader(fs string) (litShader, bool) {
	sh := rl.LoadShaderFromMemory(litVS, fs)
	if !rl.IsShaderValid(sh) {
		return litShader{}, false
	}
	return litShader{
		shader:           sh,
		viewPos:          rl.GetShaderLocation(sh, "viewPos"),
		lightDir:         rl.GetShaderLocation(sh, "lightDir"),
		ambient:          rl.GetShaderLocation(sh, "ambient"),
		lightColor:       rl.GetShaderLocation(sh, "lightColor"),
		lightIntensity:   rl.GetShaderLocation(sh, "lightIntensity"),
		specularPower:    rl.GetShaderLocation(sh, "specularPower"),
		specularStrength: rl.GetShaderLocation(sh, "specularStrength"),
		metallic:         rl.GetShaderLocation(sh, "metallic"),
	}, true
}

// setFrame sets the per-frame uniforms (cgo-safe: local arrays).
func (s *litShader) setFrame(l shading.Lighting) {
	viewPos := l.ViewPos
	lightDir := l.LightDir
	amb := l.Ambient
	lightColor := l.LightColor
	setVec(s.shader, s.viewPos, viewPos[:], rl.ShaderUniformVec3)
	setVec(s.shader, s.lightDir, lightDir[:], rl.ShaderUniformVec3)
	setVec(s.shader, s.ambient, amb[:], rl.ShaderUniformVec4)
	setVec(s.shader, s.lightColor, lightColor[:], rl.ShaderUniformVec3)
	setVec(s.shader, s.lightIntensity, []float32{l.Intensity}, rl.ShaderUniformFloat)
}

// setSurface sets the per-draw material uniforms.
func (s *litShader) setSurface(p shading.Surface) {
	setVec(s.shader, s.specularPower, []float32{p.SpecularPower}, rl.ShaderUniformFloat)
	setVec(s.shader, s.specularStrength, []float32{p.SpecularStrength}, rl.ShaderUniformFloat)
	setVec(s.shader, s.metallic, []float32{p.Metallic}, rl.ShaderUniformFloat)
}

func setVec(sh rl.Shader, loc int32, v []float32, typ rl.ShaderUniformDataType) {
	if loc < 0 {
		return
	}
	rl.SetShaderValueV(sh, loc, v, typ, 1)
}
