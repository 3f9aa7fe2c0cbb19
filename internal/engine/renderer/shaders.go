package renderer

var uniformNames = []string{
	"uView", "uProjection", "uEye",
	"uLightPos", "uAmbient", "uDiffuse", "uSpecular", "uShininess",
}

// Positions arrive in world space; parts are transformed on the CPU.
const vertexShader = `#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aColor;

uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vPos;
out vec3 vNormal;
out vec3 vColor;

void main() {
	vPos = aPos;
	vNormal = aNormal;
	vColor = aColor;
	gl_Position = uProjection * uView * vec4(aPos, 1.0);
}
`

// Phong with a white point light. lighting.PointLight.Shade mirrors it.
const fragmentShader = `#version 410 core

in vec3 vPos;
in vec3 vNormal;
in vec3 vColor;

uniform vec3 uEye;
uniform vec3 uLightPos;
uniform float uAmbient;
uniform float uDiffuse;
uniform float uSpecular;
uniform float uShininess;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	vec3 l = normalize(uLightPos - vPos);
	vec3 v = normalize(uEye - vPos);

	float diff = max(dot(n, l), 0.0);
	float spec = 0.0;
	if (diff > 0.0) {
		spec = pow(max(dot(reflect(-l, n), v), 0.0), uShininess);
	}

	vec3 color = (uAmbient + uDiffuse * diff) * vColor + uSpecular * spec;
	FragColor = vec4(min(color, vec3(1.0)), 1.0);
}
`
