package primitives

// Hemispheric ambient plus one directional light with Blinn specular. colDiffuse, matModel,
// matView and matProjection are filled in by raylib.
const vertexSrc = `#version 330
in vec3 vertexPosition;
in vec3 vertexNormal;

uniform mat4 matModel;
uniform mat4 matView;
uniform mat4 matProjection;

out vec3 worldPos;
out vec3 worldNormal;

void main() {
  vec4 p = matModel * vec4(vertexPosition, 1.0);
  worldPos = p.xyz;
  worldNormal = normalize(mat3(transpose(inverse(matModel))) * vertexNormal);
  gl_Position = matProjection * matView * p;
}
`

const fragmentSrc = `#version 330
in vec3 worldPos;
in vec3 worldNormal;

uniform vec4 colDiffuse;
uniform vec3 eye;
uniform vec3 toLight;
uniform vec3 sky;
uniform vec3 ground;
uniform float shininess;
uniform float specularLevel;

out vec4 fragColor;

void main() {
  vec3 n = normalize(worldNormal);
  vec3 l = normalize(toLight);
  vec3 v = normalize(eye - worldPos);

  vec3 ambient = mix(ground, sky, 0.5 + 0.5 * n.y) * colDiffuse.rgb;
  float lambert = max(dot(n, l), 0.0);
  float highlight = 0.0;
  if (lambert > 0.0) {
    highlight = pow(max(dot(n, normalize(l + v)), 0.0), shininess) * specularLevel;
  }
  vec3 rgb = ambient + colDiffuse.rgb * lambert + vec3(highlight);
  fragColor = vec4(min(rgb, vec3(1.0)), colDiffuse.a);
}
`
