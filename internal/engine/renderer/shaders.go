package renderer

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uViewProj;
uniform mat4 uModel;

out vec3 vNormal;

void main() {
	vNormal = mat3(transpose(inverse(uModel))) * aNormal;
	gl_Position = uViewProj * uModel * vec4(aPos, 1.0);
}
`

const meshFragmentShader = `
#version 410 core

in vec3 vNormal;

uniform vec4 uColor;
uniform vec3 uEmissive;
uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uSun;

out vec4 FragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), -uLightDir), 0.0);
	vec3 lit = uColor.rgb * (uAmbient + uSun * diffuse);
	FragColor = vec4(min(lit + uEmissive, vec3(1.0)), uColor.a);
}
`

const overlayVertexShader = `
#version 410 core

layout (location = 0) in vec2 aPos;

uniform vec2 uScale;
uniform vec2 uOffset;

void main() {
	gl_Position = vec4(aPos * uScale + uOffset, 0.0, 1.0);
}
`

const overlayFragmentShader = `
#version 410 core

uniform vec3 uColor;
uniform float uAlpha;

out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, uAlpha);
}
`
